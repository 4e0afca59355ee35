// Package bitpack converts between one-value-per-pixel bit sequences and
// row-aligned, byte-packed buffers.
//
// Bits are stored most significant bit first: the leftmost pixel of a byte is
// bit 7. [bitmap.Bitmap] numbers bits from the least significant end, so every
// index goes through [msbIndex] before touching the underlying storage.
package bitpack

import (
	bitmap "github.com/boljen/go-bitmap"
)

// RowBytes gives the size of a packed row holding `width` pixels, rounded up
// to a whole number of 32-bit words.
func RowBytes(width int) int {
	return ((width + 31) / 32) * 4
}

func msbIndex(i int) int {
	return (i &^ 7) | (7 - i&7)
}

// Pack groups `bits` into bytes, `rowWidth` values per row. Each row is padded
// with zero bits out to `rowBytes*8` bits; values past that width are dropped.
// Any non-zero value counts as a set bit. A trailing partial row is padded the
// same way.
func Pack(bits []byte, rowWidth, rowBytes int) []byte {
	if rowWidth <= 0 || rowBytes <= 0 {
		return []byte{}
	}

	rows := (len(bits) + rowWidth - 1) / rowWidth
	packed := bitmap.Bitmap(make([]byte, rows*rowBytes))
	stride := rowBytes * 8
	usable := rowWidth
	if usable > stride {
		usable = stride
	}

	for row := 0; row < rows; row++ {
		source := bits[row*rowWidth:]
		if len(source) > rowWidth {
			source = source[:rowWidth]
		}
		if len(source) > usable {
			source = source[:usable]
		}
		for x, value := range source {
			if value != 0 {
				packed.Set(msbIndex(row*stride+x), true)
			}
		}
	}
	return packed.Data(false)
}

// Unpack expands every byte of `data` into eight values of 0 or 1, most
// significant bit first. It's the inverse of [Pack] when rows are exactly
// `rowBytes*8` values wide.
func Unpack(data []byte) []byte {
	packed := bitmap.Bitmap(data)
	bits := make([]byte, len(data)*8)
	for i := range bits {
		if packed.Get(msbIndex(i)) {
			bits[i] = 1
		}
	}
	return bits
}

// Get returns the bit for pixel (x, y) in a packed buffer with the given row
// size. Coordinates are not bounds checked.
func Get(data []byte, rowBytes, x, y int) bool {
	return bitmap.Get(data, msbIndex(y*rowBytes*8+x))
}
