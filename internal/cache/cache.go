// Package cache stores raw Textract responses locally, keyed by
// document content, so repeat invocations of the synchronous commands
// do not pay for a second service call.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// ErrMiss is returned when no cached response exists for a key.
var ErrMiss = errors.New("cache miss")

// Cache is a SQLite-backed response store.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) initialize() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS responses (
			key TEXT PRIMARY KEY,
			response BLOB NOT NULL,
			created_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create responses table: %w", err)
	}
	return nil
}

// Key derives the cache key for a document and operation. Feature order
// does not affect the key.
func Key(document []byte, operation string, features []string) string {
	sum := sha256.Sum256(document)

	sorted := make([]string, len(features))
	copy(sorted, features)
	sort.Strings(sorted)

	return hex.EncodeToString(sum[:]) + ":" + operation + ":" + strings.Join(sorted, ",")
}

// Get returns the cached response for a key, or ErrMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	var response []byte
	err := c.db.QueryRowContext(ctx, `
		SELECT response FROM responses WHERE key = ?
	`, key).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	log.Debug().Str("key", key).Msg("Cache hit")
	return response, nil
}

// Put stores a response under a key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key string, response []byte) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (key, response, created_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET response = excluded.response, created_at = excluded.created_at
	`, key, response, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Prune removes entries older than the given age and returns how many
// were deleted.
func (c *Cache) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := c.db.ExecContext(ctx, `
		DELETE FROM responses WHERE created_at < ?
	`, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
