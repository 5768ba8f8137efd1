package s3util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		bucket string
		key    string
	}{
		{"object", "s3://my-bucket/path/to/doc.pdf", "my-bucket", "path/to/doc.pdf"},
		{"bucket_only", "s3://my-bucket", "my-bucket", ""},
		{"bucket_root", "s3://my-bucket/", "my-bucket", ""},
		{"prefix", "s3://my-bucket/output/", "my-bucket", "output/"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uri, err := ParseURI(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.bucket, uri.Bucket)
			assert.Equal(t, tc.key, uri.Key)
		})
	}
}

func TestParseURIInvalid(t *testing.T) {
	for _, input := range []string{"", "s3://", "http://bucket/key", "bucket/key", "s3:///key"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseURI(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidURI)
		})
	}
}

func TestURIString(t *testing.T) {
	uri := URI{Bucket: "my-bucket", Key: "upload/doc.pdf"}
	assert.Equal(t, "s3://my-bucket/upload/doc.pdf", uri.String())
}

func TestURIJoin(t *testing.T) {
	uri := URI{Bucket: "my-bucket", Key: "upload"}
	joined := uri.Join("doc.pdf")
	assert.Equal(t, "s3://my-bucket/upload/doc.pdf", joined.String())

	root := URI{Bucket: "my-bucket"}
	assert.Equal(t, "s3://my-bucket/doc.pdf", root.Join("doc.pdf").String())
}

func TestIsURI(t *testing.T) {
	assert.True(t, IsURI("s3://bucket/key"))
	assert.False(t, IsURI("/tmp/doc.pdf"))
	assert.False(t, IsURI("doc.pdf"))
}
