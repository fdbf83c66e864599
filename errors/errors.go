package errors

import "errors"

// Sentinel errors for common error conditions
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrEmptyQuery indicates that a query was empty or whitespace-only
	ErrEmptyQuery = errors.New("query is empty")

	// ErrNoDocuments indicates that the index holds no documents
	ErrNoDocuments = errors.New("no documents indexed")

	// ErrUnsupportedFormat indicates a document format the loader cannot handle
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidInput indicates that input validation failed
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")
)
