package textract

import (
	"errors"

	"github.com/aws/smithy-go"
)

// IsThrottling reports whether err is a service throttling response.
// Polling treats these as transient and keeps waiting.
func IsThrottling(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "ThrottlingException", "ProvisionedThroughputExceededException", "LimitExceededException":
		return true
	}
	return false
}

// IsUnsupportedDocument reports whether err indicates the service
// rejected the document format or content.
func IsUnsupportedDocument(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "UnsupportedDocumentException", "BadDocumentException", "DocumentTooLargeException":
		return true
	}
	return false
}
