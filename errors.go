package hebitmap

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// FormatError is the error type returned by every codec operation. All values
// unwrap to one of the sentinel errors below, so callers can match on them
// with [errors.Is].
type FormatError interface {
	error
	WithMessage(message string) FormatError
	Wrap(err error) FormatError
}

type baseFormatError string

// ErrCorruptData is returned for truncated records, length fields pointing
// past the end of the input, run-length streams that don't produce the
// expected number of bytes, and headers describing impossible geometry.
var ErrCorruptData FormatError = baseFormatError("Corrupt data")

// ErrUnsupportedVersion is returned when a record's version field is outside
// the range this package can read or write.
var ErrUnsupportedVersion FormatError = baseFormatError("Unsupported format version")

// ErrInvalidInput is returned for unreadable source images, missing paths and
// invalid encoding options.
var ErrInvalidInput FormatError = baseFormatError("Invalid input")

func (e baseFormatError) Error() string {
	return string(e)
}

func (e baseFormatError) WithMessage(message string) FormatError {
	return customFormatError{
		message:       fmt.Sprintf("%s: %s", e.Error(), message),
		originalError: e,
	}
}

func (e baseFormatError) Wrap(err error) FormatError {
	return customFormatError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customFormatError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customFormatError) Error() string {
	return e.message
}

func (e customFormatError) WithMessage(message string) FormatError {
	return customFormatError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customFormatError) Wrap(err error) FormatError {
	return customFormatError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customFormatError) Unwrap() error {
	return e.originalError
}
