package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kumasuke/textractor/internal/config"
	"github.com/kumasuke/textractor/internal/input"
	"github.com/kumasuke/textractor/internal/s3util"
	"github.com/kumasuke/textractor/internal/textract"
)

var (
	startUploadPath string
	startOutputPath string
	startOutputFile string
	startNoWait     bool
	startFeatures   []string
)

func addStartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&startUploadPath, "s3-upload-path", "", "s3:// prefix to upload local inputs under")
	cmd.Flags().StringVar(&startOutputPath, "s3-output-path", "", "s3:// prefix for the service to write raw results under")
	cmd.Flags().StringVar(&startOutputFile, "output", "", "local path to save the aggregated result JSON")
	cmd.Flags().BoolVar(&startNoWait, "no-wait", false, "print the job ID and return without waiting")
}

// NewStartTextDetectionCmd creates the start-document-text-detection command.
func NewStartTextDetectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-document-text-detection <input>",
		Short: "Detect text in a multi-page document asynchronously",
		Long: "Start an asynchronous text detection job. A local input is uploaded under " +
			"--s3-upload-path first; an s3:// input is used in place. Unless --no-wait is " +
			"given, the command waits for the job to finish.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runStart(cmd.Context(), cfg, args[0], nil)
		},
	}

	addStartFlags(cmd)
	return cmd
}

// NewStartAnalysisCmd creates the start-document-analysis command.
func NewStartAnalysisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-document-analysis <input> --features TABLES FORMS",
		Short: "Analyze a multi-page document asynchronously",
		Long: "Start an asynchronous analysis job with the requested feature types. A " +
			"local input is uploaded under --s3-upload-path first; an s3:// input is used " +
			"in place. Unless --no-wait is given, the command waits for the job to finish.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			features, err := textract.ParseFeatures(mergeFeatureArgs(startFeatures, args[1:]))
			if err != nil {
				return err
			}
			if len(features) == 0 {
				return fmt.Errorf("at least one feature type is required, e.g. --features TABLES")
			}
			return runStart(cmd.Context(), cfg, args[0], features)
		},
	}

	addStartFlags(cmd)
	cmd.Flags().StringSliceVar(&startFeatures, "features", nil, "feature types to run")
	return cmd
}

// runStart uploads a local input if needed, submits the async job, and
// unless --no-wait was given polls it to completion. A nil feature list
// selects text detection, otherwise analysis.
func runStart(ctx context.Context, cfg *config.Config, inputArg string, features []types.FeatureType) error {
	src, err := input.Resolve(inputArg)
	if err != nil {
		return err
	}

	var uploadBase s3util.URI
	if src.IsLocal() {
		base := startUploadPath
		if base == "" {
			base = cfg.S3.UploadPath
		}
		if base == "" {
			return fmt.Errorf("a local input requires --s3-upload-path")
		}
		if uploadBase, err = s3util.ParseURI(base); err != nil {
			return err
		}
	}

	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return err
	}

	docURI := src.S3
	if src.IsLocal() {
		// A unique key per invocation keeps concurrent runs from
		// clobbering each other's uploads.
		docURI = uploadBase.Join(uuid.NewString() + "-" + filepath.Base(src.Path))
		s3Client := s3.NewFromConfig(awsCfg)
		if err := s3util.Upload(ctx, s3Client, docURI, src.Path, src.MIMEType); err != nil {
			return err
		}
		log.Info().Str("uri", docURI.String()).Msg("Uploaded input document")
	}

	opts := textract.StartOptions{
		JobTag: filepath.Base(docURI.Key),
	}
	outputBase := startOutputPath
	if outputBase == "" {
		outputBase = cfg.S3.OutputPath
	}
	if outputBase != "" {
		out, err := s3util.ParseURI(outputBase)
		if err != nil {
			return err
		}
		opts.Output = &out
	}

	client := textract.NewFromConfig(awsCfg)

	var jobID string
	if features == nil {
		jobID, err = client.StartTextDetection(ctx, docURI, opts)
	} else {
		jobID, err = client.StartAnalysis(ctx, docURI, features, opts)
	}
	if err != nil {
		return err
	}

	if startNoWait {
		fmt.Println(jobID)
		return nil
	}

	poller := client.Poller(textract.PollConfig{
		Interval:    cfg.Polling.Interval,
		MaxInterval: cfg.Polling.MaxInterval,
		Timeout:     cfg.Polling.Timeout,
	})

	var result *textract.Result
	if features == nil {
		result, err = poller.WaitForTextDetection(ctx, jobID)
	} else {
		result, err = poller.WaitForAnalysis(ctx, jobID)
	}
	if err != nil {
		return err
	}

	if startOutputFile != "" {
		if err := writeResult(result, startOutputFile, "json"); err != nil {
			return err
		}
	}

	fmt.Printf("Job %s finished with status %s\n", jobID, result.JobStatus)
	printSummary(result, startOutputFile)
	return nil
}
