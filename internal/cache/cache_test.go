package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := Open(filepath.Join(t.TempDir(), "responses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetMiss(t *testing.T) {
	c := openTestCache(t)

	_, err := c.Get(context.Background(), Key([]byte("doc"), "detect", nil))
	assert.ErrorIs(t, err, ErrMiss)
}

func TestPutGet(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	key := Key([]byte("doc"), "analyze", []string{"TABLES", "FORMS"})
	require.NoError(t, c.Put(ctx, key, []byte(`{"Blocks":[]}`)))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"Blocks":[]}`), got)
}

func TestPutReplaces(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	key := Key([]byte("doc"), "detect", nil)
	require.NoError(t, c.Put(ctx, key, []byte("old")))
	require.NoError(t, c.Put(ctx, key, []byte("new")))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestKeyDistinguishesOperations(t *testing.T) {
	doc := []byte("doc")
	assert.NotEqual(t, Key(doc, "detect", nil), Key(doc, "analyze", nil))
	assert.NotEqual(t, Key(doc, "analyze", []string{"TABLES"}), Key(doc, "analyze", []string{"FORMS"}))
	assert.NotEqual(t, Key([]byte("a"), "detect", nil), Key([]byte("b"), "detect", nil))
}

func TestKeyIgnoresFeatureOrder(t *testing.T) {
	doc := []byte("doc")
	assert.Equal(t,
		Key(doc, "analyze", []string{"TABLES", "FORMS"}),
		Key(doc, "analyze", []string{"FORMS", "TABLES"}))
}

func TestPrune(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "old-key", []byte("x")))

	// Nothing is older than an hour yet.
	n, err := c.Prune(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = c.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = c.Get(ctx, "old-key")
	assert.ErrorIs(t, err, ErrMiss)
}
