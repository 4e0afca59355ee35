package hebitmap_test

import (
	"errors"
	"io"
	"testing"

	"github.com/risolvipro/HEBitmap"
	"github.com/stretchr/testify/assert"
)

func TestFormatErrorWithMessage(t *testing.T) {
	newErr := hebitmap.ErrCorruptData.WithMessage("asdfqwerty")
	assert.Equal(
		t, "Corrupt data: asdfqwerty", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, hebitmap.ErrCorruptData)
	assert.NotErrorIs(t, newErr, hebitmap.ErrInvalidInput)
}

func TestFormatErrorWithMessage__Chained(t *testing.T) {
	newErr := hebitmap.ErrUnsupportedVersion.WithMessage("table").WithMessage("got 9")
	assert.Equal(
		t, "Unsupported format version: table: got 9", newErr.Error())
	assert.ErrorIs(t, newErr, hebitmap.ErrUnsupportedVersion)
}

func TestFormatErrorWrap(t *testing.T) {
	originalErr := errors.New("original error")
	newErr := hebitmap.ErrInvalidInput.Wrap(originalErr)
	expectedMessage := "Invalid input: original error"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, hebitmap.ErrInvalidInput, "format error not set as parent")
}

func TestFormatErrorWrap__AfterMessage(t *testing.T) {
	newErr := hebitmap.ErrCorruptData.WithMessage("pixel data").Wrap(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, newErr, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, newErr, hebitmap.ErrCorruptData)
}
