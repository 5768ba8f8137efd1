package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/fatih/color"

	"github.com/kumasuke/textractor/internal/document"
	"github.com/kumasuke/textractor/internal/textract"
)

// writeResult saves an operation's result to a file, either as raw
// response JSON or as the document's rendered text.
func writeResult(result *textract.Result, path string, format string) error {
	var data []byte
	var err error

	switch format {
	case "json":
		data, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	case "text":
		data = []byte(document.New(result.Blocks).Text())
	default:
		return fmt.Errorf("unknown output format %q, want json or text", format)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// printSummary prints a short human-readable summary of a result to
// stdout.
func printSummary(result *textract.Result, outputPath string) {
	doc := document.New(result.Blocks)

	lines, tables, fields := 0, 0, 0
	for _, page := range doc.Pages {
		lines += len(page.Lines)
		tables += len(page.Tables)
		fields += len(page.Form.Fields)
	}

	green := color.New(color.FgGreen)
	pages := len(doc.Pages)
	if result.DocumentMetadata != nil && result.DocumentMetadata.Pages != nil {
		pages = int(aws.ToInt32(result.DocumentMetadata.Pages))
	}

	green.Printf("Processed %d page(s): %d line(s)", pages, lines)
	if tables > 0 {
		green.Printf(", %d table(s)", tables)
	}
	if fields > 0 {
		green.Printf(", %d form field(s)", fields)
	}
	fmt.Println()

	if len(result.Warnings) > 0 {
		yellow := color.New(color.FgYellow)
		for _, w := range result.Warnings {
			yellow.Printf("Warning: %s (pages %v)\n", aws.ToString(w.ErrorCode), w.Pages)
		}
	}
	if outputPath != "" {
		fmt.Printf("Results written to %s\n", outputPath)
	}
}
