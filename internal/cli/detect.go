package cli

import (
	"github.com/spf13/cobra"
)

var (
	detectFormat  string
	detectNoCache bool
)

// NewDetectCmd creates the detect-document-text command.
func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect-document-text <input> <output>",
		Short: "Detect text in a single-page document",
		Long: "Detect lines and words of text in a document. The input is a local file " +
			"(PNG, JPEG, TIFF or single-page PDF) or an s3:// object URI; the result is " +
			"written to the output path.",
		Args: cobra.ExactArgs(2),
		RunE: runDetect,
	}

	cmd.Flags().StringVar(&detectFormat, "format", "json", "output format (json, text)")
	cmd.Flags().BoolVar(&detectNoCache, "no-cache", false, "bypass the local response cache")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return runSync(cmd.Context(), cfg, syncRequest{
		input:     args[0],
		output:    args[1],
		format:    detectFormat,
		noCache:   detectNoCache,
		operation: "detect-document-text",
	})
}
