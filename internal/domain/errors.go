package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFileUnreadable is returned when the workbook cannot be opened or its first sheet read
	ErrFileUnreadable = errors.New("file is not a readable spreadsheet")

	// ErrColumnNotFound is returned when no header contains the requested column name
	ErrColumnNotFound = errors.New("column not found")

	// ErrEmptyInput is returned when there is nothing to process
	ErrEmptyInput = errors.New("empty input")

	// ErrNoProducts is returned when the product column holds no values
	ErrNoProducts = fmt.Errorf("%w: no products in the selected column", ErrEmptyInput)

	// ErrNoMatches is returned when brand extraction retains zero rows
	ErrNoMatches = errors.New("no products contain the selected brands")

	// ErrUnexpectedFailure wraps anything the pipeline did not anticipate
	ErrUnexpectedFailure = errors.New("unexpected failure")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrFileNotFound is returned when the input path does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputNotFound is returned when a stored workbook is missing or expired
	ErrOutputNotFound = errors.New("output not found")

	// ErrUploadTooLarge is returned when an upload exceeds the configured size limit
	ErrUploadTooLarge = errors.New("upload exceeds the size limit")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
