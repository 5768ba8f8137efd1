// Package input resolves CLI document arguments into something the
// Textract API can consume: raw bytes for a local file, or an S3 object
// reference for an s3:// URI.
package input

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kumasuke/textractor/internal/s3util"
)

// ErrUnsupportedFormat is returned for local files that are not a
// format Textract accepts.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrMultiPage is returned when a multi-page PDF is passed to a
// synchronous operation.
var ErrMultiPage = errors.New("multi-page document requires an asynchronous operation")

// supportedMIMETypes are the document formats Textract accepts.
var supportedMIMETypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/tiff":      true,
	"application/pdf": true,
}

// Source is a resolved document input.
type Source struct {
	// Path is the local file path; empty when the input is an S3 object.
	Path string
	// S3 is the S3 location; zero when the input is a local file.
	S3 s3util.URI
	// MIMEType is the detected content type for local files.
	MIMEType string
	// Pages is the page count for local PDFs, 1 otherwise.
	Pages int
}

// IsLocal reports whether the source is a local file.
func (s Source) IsLocal() bool {
	return s.Path != ""
}

// IsPDF reports whether a local source is a PDF document.
func (s Source) IsPDF() bool {
	return s.MIMEType == "application/pdf"
}

// Bytes reads the contents of a local source.
func (s Source) Bytes() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return data, nil
}

// Resolve inspects a CLI input argument. Local files are sniffed for
// their content type and, for PDFs, their page count; s3:// inputs are
// parsed but otherwise left to the service to validate.
func Resolve(arg string) (Source, error) {
	if s3util.IsURI(arg) {
		uri, err := s3util.ParseURI(arg)
		if err != nil {
			return Source{}, err
		}
		if uri.Key == "" || strings.HasSuffix(uri.Key, "/") {
			return Source{}, fmt.Errorf("%w: %q does not name an object", s3util.ErrInvalidURI, arg)
		}
		return Source{S3: uri, Pages: 1}, nil
	}

	if _, err := os.Stat(arg); err != nil {
		return Source{}, fmt.Errorf("failed to stat input %s: %w", arg, err)
	}

	mt, err := mimetype.DetectFile(arg)
	if err != nil {
		return Source{}, fmt.Errorf("failed to detect content type of %s: %w", arg, err)
	}
	if !supportedMIMETypes[mt.String()] {
		return Source{}, fmt.Errorf("%w: %s is %s, want PNG, JPEG, TIFF or PDF", ErrUnsupportedFormat, arg, mt)
	}

	src := Source{Path: arg, MIMEType: mt.String(), Pages: 1}
	if src.IsPDF() {
		n, err := api.PageCountFile(arg)
		if err != nil {
			return Source{}, fmt.Errorf("failed to count pages of %s: %w", arg, err)
		}
		src.Pages = n
	}
	return src, nil
}

// CheckSinglePage rejects local multi-page documents ahead of a
// synchronous API call, which would otherwise fail server-side.
func CheckSinglePage(src Source) error {
	if src.Pages > 1 {
		return fmt.Errorf("%w: %s has %d pages", ErrMultiPage, src.Path, src.Pages)
	}
	return nil
}
