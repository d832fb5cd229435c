package internal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCredentialsMissing is returned when either credential variable is
// absent from the environment.
var ErrCredentialsMissing = errors.New(
	"POWERDRILL_USER_ID and POWERDRILL_PROJECT_API_KEY must be set\n" +
		"Setup guide:\n" +
		"  1. Create a Teamspace: https://www.youtube.com/watch?v=I-0yGD9HeDw\n" +
		"  2. Get API credentials: https://www.youtube.com/watch?v=qs-GsUgjb1g")

// APIError is an error reported by the Powerdrill API, either as a non-zero
// code in the response envelope or as a plain HTTP failure.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("powerdrill API error (code=%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("powerdrill API error (status=%d): %s", e.StatusCode, e.Message)
}

// InvalidDataSourceError means at least one data source in the dataset
// failed server-side indexing. Polling stops immediately when this is seen.
type InvalidDataSourceError struct {
	DatasetID    string
	InvalidCount int
}

func (e *InvalidDataSourceError) Error() string {
	return fmt.Sprintf("dataset %s has %d invalid data source(s); check the file format and re-upload",
		e.DatasetID, e.InvalidCount)
}

// SyncTimeoutError means the poll attempt budget ran out while data sources
// were still syncing.
type SyncTimeoutError struct {
	DatasetID string
	Attempts  int
}

func (e *SyncTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %d attempts waiting for dataset %s to sync",
		e.Attempts, e.DatasetID)
}

// UploadError wraps a failure while transferring one part of a multipart
// upload. Any part failure aborts the whole upload.
type UploadError struct {
	Path string
	Part int
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload error [%s] part %d: %v", e.Path, e.Part, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// UnsupportedFileError is returned before any upload traffic when the file
// extension is not accepted by the API.
type UnsupportedFileError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s (supported: %s)",
		e.Ext, e.Path, strings.Join(SupportedExtensions, ", "))
}
