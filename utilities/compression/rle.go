package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxRunLength is the longest run a single record can represent.
const MaxRunLength = 255

// CompressRLE reads bytes from the input and writes compressed data to the
// output until the input is exhausted. The return value is the number of bytes
// written, only valid if no error occurred.
//
// An empty input produces no output at all.
func CompressRLE(input io.Reader, output io.Writer) (int64, error) {
	grouper := NewRLEGrouper(input)

	totalBytesWritten := int64(0)
	for {
		run, err := grouper.GetNextRun()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, nil
			}
			return totalBytesWritten, err
		}

		for run.RunLength > 0 {
			count := run.RunLength
			if count > MaxRunLength {
				count = MaxRunLength
			}

			n, err := output.Write([]byte{byte(count), run.Byte})
			if err != nil {
				return totalBytesWritten, err
			}
			totalBytesWritten += int64(n)
			run.RunLength -= count
		}
	}
}

// DecompressRLE expands records from input until exactly `length` bytes have
// been written to output. A final record that would overshoot is truncated.
//
// If input implements [io.ByteReader] it is never read past the last record
// needed, so the caller can continue reading whatever follows the stream.
// Otherwise it's wrapped in a buffered reader that may read ahead.
//
// If the input ends before `length` bytes were produced, the returned error
// wraps [io.ErrUnexpectedEOF].
func DecompressRLE(input io.Reader, output io.Writer, length int64) (int64, error) {
	source, ok := input.(io.ByteReader)
	if !ok {
		source = bufio.NewReader(input)
	}

	totalBytesWritten := int64(0)
	for totalBytesWritten < length {
		count, err := source.ReadByte()
		if err != nil {
			return totalBytesWritten, truncatedStreamError(err, totalBytesWritten, length)
		}
		value, err := source.ReadByte()
		if err != nil {
			return totalBytesWritten, truncatedStreamError(err, totalBytesWritten, length)
		}

		runLength := int64(count)
		if runLength > length-totalBytesWritten {
			runLength = length - totalBytesWritten
		}
		if runLength == 0 {
			continue
		}

		n, err := output.Write(bytes.Repeat([]byte{value}, int(runLength)))
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
		totalBytesWritten += int64(n)
	}
	return totalBytesWritten, nil
}

func truncatedStreamError(err error, written, length int64) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf(
			"%w: run-length stream ended after %d of %d bytes",
			io.ErrUnexpectedEOF,
			written,
			length,
		)
	}
	return fmt.Errorf("error reading input: %w", err)
}

// CompressBytes is a convenience wrapper around [CompressRLE] for in-memory
// buffers.
func CompressBytes(data []byte) []byte {
	var buffer bytes.Buffer
	// Writes to a bytes.Buffer can't fail and neither can reads from a
	// bytes.Reader, so there's no error to report.
	CompressRLE(bytes.NewReader(data), &buffer)
	return buffer.Bytes()
}

// DecompressBytes expands the records at the start of `packed` into a new slice
// of `length` bytes. The second return value is the number of bytes of
// `packed` consumed, so any data following the stream can be located.
func DecompressBytes(packed []byte, length int) ([]byte, int, error) {
	reader := bytes.NewReader(packed)
	output := bytes.NewBuffer(make([]byte, 0, length))

	_, err := DecompressRLE(reader, output, int64(length))
	consumed := len(packed) - reader.Len()
	if err != nil {
		return nil, consumed, err
	}
	return output.Bytes(), consumed, nil
}
