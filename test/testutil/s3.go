package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/kumasuke/textractor/internal/s3util"
)

// CallTextract reports whether live-service tests are enabled.
func CallTextract() bool {
	return os.Getenv("CALL_TEXTRACT") != ""
}

// SkipUnlessLive skips the test unless CALL_TEXTRACT is set.
func SkipUnlessLive(t *testing.T) {
	t.Helper()
	if !CallTextract() {
		t.Skip("CLI tests only work with CALL_TEXTRACT enabled")
	}
}

// Profile returns the AWS profile used by the test suite.
func Profile() string {
	if p := os.Getenv("TEXTRACTOR_TEST_PROFILE"); p != "" {
		return p
	}
	return "default"
}

// Region returns the AWS region used by the test suite.
func Region() string {
	if r := os.Getenv("TEXTRACTOR_TEST_REGION"); r != "" {
		return r
	}
	return "us-west-2"
}

// S3Client returns an S3 client for the test profile and region.
func S3Client(t *testing.T) *s3.Client {
	t.Helper()

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithSharedConfigProfile(Profile()),
		awsconfig.WithRegion(Region()),
	)
	if err != nil {
		t.Fatalf("failed to load AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg)
}

// CreateTestBucket creates a bucket with a UUID-generated name and
// registers teardown that empties and deletes it regardless of the
// test's outcome.
func CreateTestBucket(t *testing.T) string {
	t.Helper()

	client := S3Client(t)
	ctx := context.Background()
	name := uuid.NewString()

	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if Region() != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(Region()),
		}
	}
	if _, err := client.CreateBucket(ctx, input); err != nil {
		t.Fatalf("could not create S3 bucket %s: %v", name, err)
	}

	t.Cleanup(func() {
		// Empty the bucket first; deletion fails otherwise.
		if err := s3util.DeletePrefix(ctx, client, s3util.URI{Bucket: name}); err != nil {
			t.Errorf("unable to empty bucket %s: %v", name, err)
		}
		if _, err := client.DeleteBucket(ctx, &s3.DeleteBucketInput{
			Bucket: aws.String(name),
		}); err != nil {
			t.Errorf("unable to delete bucket %s: %v", name, err)
		}
	})

	return name
}

// UploadFixture uploads a local file to the bucket under the given key.
func UploadFixture(t *testing.T, bucket, key, localPath string) {
	t.Helper()

	uri := s3util.URI{Bucket: bucket, Key: key}
	if err := s3util.Upload(context.Background(), S3Client(t), uri, localPath, ""); err != nil {
		t.Fatalf("failed to upload fixture %s: %v", localPath, err)
	}
}

// DownloadObject fetches an object from the bucket.
func DownloadObject(t *testing.T, bucket, key string) []byte {
	t.Helper()

	uri := s3util.URI{Bucket: bucket, Key: key}
	data, err := s3util.Download(context.Background(), S3Client(t), uri)
	if err != nil {
		t.Fatalf("failed to download s3://%s/%s: %v", bucket, key, err)
	}
	return data
}
