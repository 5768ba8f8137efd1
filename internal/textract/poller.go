package textract

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/rs/zerolog/log"
)

// PollConfig tunes how a Poller waits for job completion.
type PollConfig struct {
	// Interval is the initial delay between status checks.
	Interval time.Duration
	// MaxInterval caps the delay as it backs off.
	MaxInterval time.Duration
	// Timeout bounds the total wait; zero means no bound beyond the
	// caller's context.
	Timeout time.Duration
}

// DefaultPollConfig matches the service's expected completion times for
// typical multi-page documents.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		Interval:    2 * time.Second,
		MaxInterval: 30 * time.Second,
		Timeout:     15 * time.Minute,
	}
}

// Poller waits for asynchronous Textract jobs to finish and aggregates
// their paginated results.
type Poller struct {
	api API
	cfg PollConfig

	// sleep is replaceable in tests.
	sleep func(context.Context, time.Duration) error
}

// NewPoller creates a Poller over the same API as the Client.
func NewPoller(api API, cfg PollConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollConfig().Interval
	}
	if cfg.MaxInterval < cfg.Interval {
		cfg.MaxInterval = cfg.Interval
	}
	return &Poller{api: api, cfg: cfg, sleep: sleep}
}

// resultPage is the operation-independent view of one Get* response.
type resultPage struct {
	Status           types.JobStatus
	StatusMessage    string
	DocumentMetadata *types.DocumentMetadata
	Blocks           []types.Block
	Warnings         []types.Warning
	NextToken        *string
}

// WaitForTextDetection blocks until the text detection job finishes,
// then returns all result pages merged into one Result.
func (p *Poller) WaitForTextDetection(ctx context.Context, jobID string) (*Result, error) {
	return p.wait(ctx, jobID, func(ctx context.Context, next *string) (resultPage, error) {
		out, err := p.api.GetDocumentTextDetection(ctx, &textract.GetDocumentTextDetectionInput{
			JobId:     aws.String(jobID),
			NextToken: next,
		})
		if err != nil {
			return resultPage{}, err
		}
		return resultPage{
			Status:           out.JobStatus,
			StatusMessage:    aws.ToString(out.StatusMessage),
			DocumentMetadata: out.DocumentMetadata,
			Blocks:           out.Blocks,
			Warnings:         out.Warnings,
			NextToken:        out.NextToken,
		}, nil
	})
}

// WaitForAnalysis blocks until the analysis job finishes, then returns
// all result pages merged into one Result.
func (p *Poller) WaitForAnalysis(ctx context.Context, jobID string) (*Result, error) {
	return p.wait(ctx, jobID, func(ctx context.Context, next *string) (resultPage, error) {
		out, err := p.api.GetDocumentAnalysis(ctx, &textract.GetDocumentAnalysisInput{
			JobId:     aws.String(jobID),
			NextToken: next,
		})
		if err != nil {
			return resultPage{}, err
		}
		return resultPage{
			Status:           out.JobStatus,
			StatusMessage:    aws.ToString(out.StatusMessage),
			DocumentMetadata: out.DocumentMetadata,
			Blocks:           out.Blocks,
			Warnings:         out.Warnings,
			NextToken:        out.NextToken,
		}, nil
	})
}

// wait polls until the job leaves IN_PROGRESS, then drains the
// remaining result pages. Throttling responses are treated like an
// in-progress poll; the delay backs off multiplicatively up to the cap.
func (p *Poller) wait(ctx context.Context, jobID string, fetch func(context.Context, *string) (resultPage, error)) (*Result, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	delay := p.cfg.Interval
	var first resultPage
	for {
		page, err := fetch(ctx, nil)
		switch {
		case err == nil && page.Status != types.JobStatusInProgress:
			first = page
		case err == nil:
			log.Debug().Str("job_id", jobID).Dur("delay", delay).Msg("Job still in progress")
		case IsThrottling(err):
			log.Debug().Str("job_id", jobID).Dur("delay", delay).Msg("Throttled while polling")
		default:
			return nil, fmt.Errorf("failed to poll job %s: %w", jobID, err)
		}
		if first.Status != "" {
			break
		}

		if err := p.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("gave up waiting for job %s: %w", jobID, err)
		}
		delay = min(delay*2, p.cfg.MaxInterval)
	}

	if first.Status == types.JobStatusFailed {
		return nil, fmt.Errorf("job %s failed: %s", jobID, first.StatusMessage)
	}

	result := &Result{
		JobID:            jobID,
		JobStatus:        first.Status,
		StatusMessage:    first.StatusMessage,
		DocumentMetadata: first.DocumentMetadata,
		Warnings:         first.Warnings,
		Blocks:           first.Blocks,
	}

	delay = p.cfg.Interval
	next := first.NextToken
	for next != nil {
		page, err := fetch(ctx, next)
		if err != nil {
			if IsThrottling(err) {
				if err := p.sleep(ctx, delay); err != nil {
					return nil, fmt.Errorf("gave up reading results of job %s: %w", jobID, err)
				}
				delay = min(delay*2, p.cfg.MaxInterval)
				continue
			}
			return nil, fmt.Errorf("failed to read results of job %s: %w", jobID, err)
		}
		delay = p.cfg.Interval
		result.Blocks = append(result.Blocks, page.Blocks...)
		result.Warnings = append(result.Warnings, page.Warnings...)
		next = page.NextToken
	}

	log.Info().
		Str("job_id", jobID).
		Str("status", string(result.JobStatus)).
		Int("blocks", len(result.Blocks)).
		Msg("Job complete")
	return result, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
