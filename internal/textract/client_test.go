package textract

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumasuke/textractor/internal/s3util"
)

type clientFake struct {
	API

	detectIn  *textract.DetectDocumentTextInput
	analyzeIn *textract.AnalyzeDocumentInput
	startText *textract.StartDocumentTextDetectionInput
	startAna  *textract.StartDocumentAnalysisInput
}

func (f *clientFake) DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, _ ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error) {
	f.detectIn = params
	return &textract.DetectDocumentTextOutput{
		Blocks:           []types.Block{{Id: aws.String("b-1"), BlockType: types.BlockTypePage}},
		DocumentMetadata: &types.DocumentMetadata{Pages: aws.Int32(1)},
	}, nil
}

func (f *clientFake) AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, _ ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error) {
	f.analyzeIn = params
	return &textract.AnalyzeDocumentOutput{}, nil
}

func (f *clientFake) StartDocumentTextDetection(ctx context.Context, params *textract.StartDocumentTextDetectionInput, _ ...func(*textract.Options)) (*textract.StartDocumentTextDetectionOutput, error) {
	f.startText = params
	return &textract.StartDocumentTextDetectionOutput{JobId: aws.String("job-1")}, nil
}

func (f *clientFake) StartDocumentAnalysis(ctx context.Context, params *textract.StartDocumentAnalysisInput, _ ...func(*textract.Options)) (*textract.StartDocumentAnalysisOutput, error) {
	f.startAna = params
	return &textract.StartDocumentAnalysisOutput{JobId: aws.String("job-2")}, nil
}

func TestDetectWithBytes(t *testing.T) {
	fake := &clientFake{}
	client := New(fake)

	result, err := client.Detect(context.Background(), Document{Bytes: []byte("png-bytes")})
	require.NoError(t, err)

	assert.Len(t, result.Blocks, 1)
	assert.Equal(t, []byte("png-bytes"), fake.detectIn.Document.Bytes)
	assert.Nil(t, fake.detectIn.Document.S3Object)
}

func TestDetectWithS3Object(t *testing.T) {
	fake := &clientFake{}
	client := New(fake)

	uri := s3util.URI{Bucket: "my-bucket", Key: "doc.png"}
	_, err := client.Detect(context.Background(), Document{S3: &uri})
	require.NoError(t, err)

	obj := fake.detectIn.Document.S3Object
	require.NotNil(t, obj)
	assert.Equal(t, "my-bucket", aws.ToString(obj.Bucket))
	assert.Equal(t, "doc.png", aws.ToString(obj.Name))
}

func TestDetectEmptyDocument(t *testing.T) {
	_, err := New(&clientFake{}).Detect(context.Background(), Document{})
	require.Error(t, err)
}

func TestAnalyzeRequiresFeatures(t *testing.T) {
	_, err := New(&clientFake{}).Analyze(context.Background(), Document{Bytes: []byte("x")}, nil)
	require.Error(t, err)
}

func TestAnalyzePassesFeatures(t *testing.T) {
	fake := &clientFake{}
	client := New(fake)

	features := []types.FeatureType{types.FeatureTypeTables, types.FeatureTypeForms}
	_, err := client.Analyze(context.Background(), Document{Bytes: []byte("x")}, features)
	require.NoError(t, err)

	assert.Equal(t, features, fake.analyzeIn.FeatureTypes)
}

func TestStartTextDetection(t *testing.T) {
	fake := &clientFake{}
	client := New(fake)

	jobID, err := client.StartTextDetection(context.Background(),
		s3util.URI{Bucket: "my-bucket", Key: "upload/doc.pdf"},
		StartOptions{
			Output:             &s3util.URI{Bucket: "my-bucket", Key: "output"},
			ClientRequestToken: "token-1",
		})
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)

	in := fake.startText
	assert.Equal(t, "upload/doc.pdf", aws.ToString(in.DocumentLocation.S3Object.Name))
	require.NotNil(t, in.OutputConfig)
	assert.Equal(t, "my-bucket", aws.ToString(in.OutputConfig.S3Bucket))
	assert.Equal(t, "output", aws.ToString(in.OutputConfig.S3Prefix))
	assert.Equal(t, "token-1", aws.ToString(in.ClientRequestToken))
}

func TestStartAnalysisRequiresFeatures(t *testing.T) {
	_, err := New(&clientFake{}).StartAnalysis(context.Background(),
		s3util.URI{Bucket: "b", Key: "k"}, nil, StartOptions{})
	require.Error(t, err)
}

func TestStartAnalysisWithoutOutputConfig(t *testing.T) {
	fake := &clientFake{}
	client := New(fake)

	jobID, err := client.StartAnalysis(context.Background(),
		s3util.URI{Bucket: "b", Key: "doc.pdf"},
		[]types.FeatureType{types.FeatureTypeTables},
		StartOptions{})
	require.NoError(t, err)
	assert.Equal(t, "job-2", jobID)
	assert.Nil(t, fake.startAna.OutputConfig)
}
