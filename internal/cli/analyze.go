package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kumasuke/textractor/internal/textract"
)

var (
	analyzeFeatures []string
	analyzeFormat   string
	analyzeNoCache  bool
)

// NewAnalyzeCmd creates the analyze-document command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analyze-document <input> <output> --features TABLES FORMS",
		Aliases: []string{"AnalyzeDocument"},
		Short:   "Analyze a single-page document for tables, forms and more",
		Long: "Analyze a document with the requested feature types (" +
			strings.Join(textract.FeatureNames(), ", ") + "). The input is a local file " +
			"or an s3:// object URI; the result is written to the output path.",
		Args: cobra.MinimumNArgs(2),
		RunE: runAnalyze,
	}

	cmd.Flags().StringSliceVar(&analyzeFeatures, "features", nil, "feature types to run")
	cmd.Flags().StringVar(&analyzeFormat, "format", "json", "output format (json, text)")
	cmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "bypass the local response cache")

	return cmd
}

// mergeFeatureArgs combines --features values with trailing positional
// args without aliasing the flag's backing slice.
func mergeFeatureArgs(flagValues, extra []string) []string {
	merged := make([]string, 0, len(flagValues)+len(extra))
	merged = append(merged, flagValues...)
	return append(merged, extra...)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Space-separated feature lists ("--features TABLES FORMS") arrive
	// as extra positional args.
	features, err := textract.ParseFeatures(mergeFeatureArgs(analyzeFeatures, args[2:]))
	if err != nil {
		return err
	}
	if len(features) == 0 {
		return fmt.Errorf("at least one feature type is required, e.g. --features TABLES")
	}

	return runSync(cmd.Context(), cfg, syncRequest{
		input:     args[0],
		output:    args[1],
		format:    analyzeFormat,
		noCache:   analyzeNoCache,
		operation: "analyze-document",
		features:  features,
	})
}
