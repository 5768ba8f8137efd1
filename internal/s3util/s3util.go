// Package s3util provides S3 URI parsing and object transfer helpers.
package s3util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// ErrInvalidURI is returned when a string is not a valid s3:// URI.
var ErrInvalidURI = errors.New("invalid s3 uri")

// URI identifies an object or prefix in S3.
type URI struct {
	Bucket string
	Key    string
}

// IsURI reports whether s looks like an s3:// URI.
func IsURI(s string) bool {
	return strings.HasPrefix(s, "s3://")
}

// ParseURI parses an s3://bucket/key string. The key may be empty
// (bucket root) and may end in a slash (prefix).
func ParseURI(s string) (URI, error) {
	rest, ok := strings.CutPrefix(s, "s3://")
	if !ok || rest == "" {
		return URI{}, fmt.Errorf("%w: %q", ErrInvalidURI, s)
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return URI{}, fmt.Errorf("%w: %q", ErrInvalidURI, s)
	}

	return URI{Bucket: bucket, Key: key}, nil
}

// String returns the s3:// form of the URI.
func (u URI) String() string {
	return "s3://" + u.Bucket + "/" + u.Key
}

// Join returns a URI with elem appended to the key.
func (u URI) Join(elem string) URI {
	return URI{Bucket: u.Bucket, Key: path.Join(u.Key, elem)}
}

// Upload stores the contents of a local file at the given URI.
func Upload(ctx context.Context, client *s3.Client, uri URI, localPath string, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(uri.Bucket),
		Key:    aws.String(uri.Key),
		Body:   f,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s to %s: %w", localPath, uri, err)
	}

	log.Debug().Str("uri", uri.String()).Str("path", localPath).Msg("Uploaded object")
	return nil
}

// Download fetches the object at the given URI.
func Download(ctx context.Context, client *s3.Client, uri URI) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(uri.Bucket),
		Key:    aws.String(uri.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", uri, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	return data, nil
}

// Delete removes the object at the given URI.
func Delete(ctx context.Context, client *s3.Client, uri URI) error {
	_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(uri.Bucket),
		Key:    aws.String(uri.Key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", uri, err)
	}
	return nil
}

// DeletePrefix removes every object under the URI's key prefix.
func DeletePrefix(ctx context.Context, client *s3.Client, uri URI) error {
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(uri.Bucket),
		Prefix: aws.String(uri.Key),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", uri, err)
		}
		for _, obj := range page.Contents {
			if err := Delete(ctx, client, URI{Bucket: uri.Bucket, Key: aws.ToString(obj.Key)}); err != nil {
				return err
			}
		}
	}
	return nil
}
