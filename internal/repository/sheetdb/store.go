package sheetdb

import (
	"context"
	"errors"
)

// Error taxonomy for gateway failures. Callers branch with errors.Is; the
// wrapped message carries the detail.
var (
	// ErrTransport means the request could not be sent or the response not
	// received.
	ErrTransport = errors.New("sheetdb: transport failure")
	// ErrFormat means the response body is not the expected {success, data}
	// envelope.
	ErrFormat = errors.New("sheetdb: malformed response")
	// ErrApplication means the backend answered success=false.
	ErrApplication = errors.New("sheetdb: backend rejected request")
)

// UploadRequest carries a base64 file payload destined for the configured
// Drive folder.
type UploadRequest struct {
	Base64Data string
	FileName   string
	MimeType   string
	FolderID   string
}

// FetchOption tweaks a single read request.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	getDataAction bool
}

// WithGetDataAction adds the explicit action=getData query parameter that the
// login and settings reads use.
func WithGetDataAction() FetchOption {
	return func(o *fetchOptions) { o.getDataAction = true }
}

// Store is the persistence surface of the spreadsheet backing store. Rows are
// positional and untyped; the rowmap package turns them into records.
//
// Implementations perform no retries and no request deduplication: a rapid
// double submit can append duplicate rows, matching the backing store's own
// behavior.
type Store interface {
	// FetchSheet returns all rows of the named sheet, header row included.
	FetchSheet(ctx context.Context, sheet string, opts ...FetchOption) ([][]any, error)
	// Insert appends a row to the named sheet.
	Insert(ctx context.Context, sheet string, row []string) error
	// Update overwrites the 1-based row at rowIndex.
	Update(ctx context.Context, sheet string, rowIndex int, row []string) error
	// Delete removes the 1-based row at rowIndex.
	Delete(ctx context.Context, sheet string, rowIndex int) error
	// UploadFile stores a file and returns its public URL.
	UploadFile(ctx context.Context, req UploadRequest) (string, error)
}
