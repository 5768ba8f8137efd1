// Package textract wraps the AWS Textract API: synchronous detection
// and analysis calls, asynchronous job submission, and polling for job
// completion with result-page aggregation.
package textract

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/rs/zerolog/log"

	"github.com/kumasuke/textractor/internal/s3util"
)

// API is the subset of the Textract client the wrapper uses. Narrowed
// for testability.
type API interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
	AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error)
	StartDocumentTextDetection(ctx context.Context, params *textract.StartDocumentTextDetectionInput, optFns ...func(*textract.Options)) (*textract.StartDocumentTextDetectionOutput, error)
	StartDocumentAnalysis(ctx context.Context, params *textract.StartDocumentAnalysisInput, optFns ...func(*textract.Options)) (*textract.StartDocumentAnalysisOutput, error)
	GetDocumentTextDetection(ctx context.Context, params *textract.GetDocumentTextDetectionInput, optFns ...func(*textract.Options)) (*textract.GetDocumentTextDetectionOutput, error)
	GetDocumentAnalysis(ctx context.Context, params *textract.GetDocumentAnalysisInput, optFns ...func(*textract.Options)) (*textract.GetDocumentAnalysisOutput, error)
}

// Document is the input to a Textract operation: either raw bytes or a
// reference to an object in S3. Exactly one must be set.
type Document struct {
	Bytes []byte
	S3    *s3util.URI
}

func (d Document) toAPI() (*types.Document, error) {
	switch {
	case len(d.Bytes) > 0:
		return &types.Document{Bytes: d.Bytes}, nil
	case d.S3 != nil:
		return &types.Document{S3Object: d.S3Object()}, nil
	default:
		return nil, fmt.Errorf("document has no content")
	}
}

// S3Object returns the API form of the document's S3 reference, or nil
// for byte inputs.
func (d Document) S3Object() *types.S3Object {
	if d.S3 == nil {
		return nil
	}
	return &types.S3Object{
		Bucket: aws.String(d.S3.Bucket),
		Name:   aws.String(d.S3.Key),
	}
}

// Result is the aggregated outcome of a Textract operation. For
// asynchronous jobs the blocks of every result page are concatenated in
// page order.
type Result struct {
	DocumentMetadata *types.DocumentMetadata `json:"DocumentMetadata,omitempty"`
	JobID            string                  `json:"JobId,omitempty"`
	JobStatus        types.JobStatus         `json:"JobStatus,omitempty"`
	StatusMessage    string                  `json:"StatusMessage,omitempty"`
	Warnings         []types.Warning         `json:"Warnings,omitempty"`
	Blocks           []types.Block           `json:"Blocks"`
}

// Client wraps the Textract service client.
type Client struct {
	api API
}

// New creates a Client from a configured AWS SDK client.
func New(api API) *Client {
	return &Client{api: api}
}

// NewFromConfig creates a Client from an AWS configuration.
func NewFromConfig(cfg aws.Config) *Client {
	return New(textract.NewFromConfig(cfg))
}

// Poller returns a Poller sharing this client's underlying API.
func (c *Client) Poller(cfg PollConfig) *Poller {
	return NewPoller(c.api, cfg)
}

// Detect runs synchronous text detection on a single-page document.
func (c *Client) Detect(ctx context.Context, doc Document) (*Result, error) {
	apiDoc, err := doc.toAPI()
	if err != nil {
		return nil, err
	}

	out, err := c.api.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: apiDoc,
	})
	if err != nil {
		return nil, fmt.Errorf("detect-document-text: %w", err)
	}

	log.Debug().Int("blocks", len(out.Blocks)).Msg("Text detection complete")
	return &Result{
		DocumentMetadata: out.DocumentMetadata,
		Blocks:           out.Blocks,
	}, nil
}

// Analyze runs synchronous analysis on a single-page document with the
// given feature types.
func (c *Client) Analyze(ctx context.Context, doc Document, features []types.FeatureType) (*Result, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("analyze-document: at least one feature type is required")
	}

	apiDoc, err := doc.toAPI()
	if err != nil {
		return nil, err
	}

	out, err := c.api.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
		Document:     apiDoc,
		FeatureTypes: features,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze-document: %w", err)
	}

	log.Debug().Int("blocks", len(out.Blocks)).Msg("Document analysis complete")
	return &Result{
		DocumentMetadata: out.DocumentMetadata,
		Blocks:           out.Blocks,
	}, nil
}

// StartOptions tunes asynchronous job submission.
type StartOptions struct {
	// Output, when set, directs the service to write raw results under
	// this S3 prefix.
	Output *s3util.URI
	// ClientRequestToken makes job submission idempotent.
	ClientRequestToken string
	// JobTag is an opaque identifier echoed in job notifications.
	JobTag string
}

func (o StartOptions) outputConfig() *types.OutputConfig {
	if o.Output == nil {
		return nil
	}
	cfg := &types.OutputConfig{S3Bucket: aws.String(o.Output.Bucket)}
	if o.Output.Key != "" {
		cfg.S3Prefix = aws.String(o.Output.Key)
	}
	return cfg
}

// StartTextDetection submits an asynchronous text detection job for a
// document already in S3 and returns the job ID.
func (c *Client) StartTextDetection(ctx context.Context, doc s3util.URI, opts StartOptions) (string, error) {
	input := &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(doc.Bucket),
				Name:   aws.String(doc.Key),
			},
		},
		OutputConfig: opts.outputConfig(),
	}
	if opts.ClientRequestToken != "" {
		input.ClientRequestToken = aws.String(opts.ClientRequestToken)
	}
	if opts.JobTag != "" {
		input.JobTag = aws.String(opts.JobTag)
	}

	out, err := c.api.StartDocumentTextDetection(ctx, input)
	if err != nil {
		return "", fmt.Errorf("start-document-text-detection: %w", err)
	}

	jobID := aws.ToString(out.JobId)
	log.Info().Str("job_id", jobID).Str("document", doc.String()).Msg("Started text detection job")
	return jobID, nil
}

// StartAnalysis submits an asynchronous analysis job for a document
// already in S3 and returns the job ID.
func (c *Client) StartAnalysis(ctx context.Context, doc s3util.URI, features []types.FeatureType, opts StartOptions) (string, error) {
	if len(features) == 0 {
		return "", fmt.Errorf("start-document-analysis: at least one feature type is required")
	}

	input := &textract.StartDocumentAnalysisInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(doc.Bucket),
				Name:   aws.String(doc.Key),
			},
		},
		FeatureTypes: features,
		OutputConfig: opts.outputConfig(),
	}
	if opts.ClientRequestToken != "" {
		input.ClientRequestToken = aws.String(opts.ClientRequestToken)
	}
	if opts.JobTag != "" {
		input.JobTag = aws.String(opts.JobTag)
	}

	out, err := c.api.StartDocumentAnalysis(ctx, input)
	if err != nil {
		return "", fmt.Errorf("start-document-analysis: %w", err)
	}

	jobID := aws.ToString(out.JobId)
	log.Info().Str("job_id", jobID).Str("document", doc.String()).Msg("Started analysis job")
	return jobID, nil
}
