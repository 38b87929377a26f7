package report

import "errors"

// Store errors. Sentinel values let the HTTP layer map failures to
// response codes with errors.Is instead of string matching.
var (
	// ErrReportNotFound is returned by Read when no stored document
	// matches the requested file name.
	ErrReportNotFound = errors.New("report not found")

	// ErrInvalidReportName is returned by Read when the requested file
	// name does not match the report naming pattern. This rejects path
	// traversal attempts before any filesystem access happens.
	ErrInvalidReportName = errors.New("invalid report file name")
)
