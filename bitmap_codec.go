package hebitmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/risolvipro/HEBitmap/utilities/compression"
)

// rawBitmapHeader is the fixed part of a bitmap record, common to all versions.
type rawBitmapHeader struct {
	Version      uint32
	FullWidth    uint32
	FullHeight   uint32
	BoundsX      uint32
	BoundsY      uint32
	BoundsWidth  uint32
	BoundsHeight uint32
	RowBytes     uint32
	HasMask      uint8
}

const rawBitmapHeaderSize = 8*4 + 1

// EncodeOptions selects the layout of written records.
type EncodeOptions struct {
	Version Version
	// Compressed run-length encodes the pixel and mask data. Requires
	// [Version3] or later.
	Compressed bool
}

// DefaultEncodeOptions writes the latest version with compression.
var DefaultEncodeOptions = EncodeOptions{Version: LatestVersion, Compressed: true}

// Validate checks that the version is supported and allows compression if
// it is requested.
func (opts EncodeOptions) Validate() error {
	if err := opts.Version.Validate(); err != nil {
		return err
	}
	if opts.Compressed && !opts.Version.SupportsCompression() {
		return ErrInvalidInput.WithMessage(
			fmt.Sprintf("compression requires %s or later, got %s", Version3, opts.Version))
	}
	return nil
}

// RecordInfo describes how a bitmap record was laid out on disk.
type RecordInfo struct {
	Version       Version
	Compressed    bool
	PaddingLength uint32
	// HeaderLength is the offset of the first body byte.
	HeaderLength int
	// BodyLength is the number of encoded body bytes, pixels and mask.
	BodyLength int
}

// Length is the total number of bytes the record occupies.
func (info RecordInfo) Length() int {
	return info.HeaderLength + info.BodyLength
}

// EncodeBitmap serializes one bitmap record.
func EncodeBitmap(b *Bitmap, opts EncodeOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := b.validate(); err != nil {
		return nil, err
	}

	fields := opts.Version.fields()
	var buffer bytes.Buffer

	header := rawBitmapHeader{
		Version:      uint32(opts.Version),
		FullWidth:    b.FullWidth,
		FullHeight:   b.FullHeight,
		BoundsX:      b.BoundsX,
		BoundsY:      b.BoundsY,
		BoundsWidth:  b.BoundsWidth,
		BoundsHeight: b.BoundsHeight,
		RowBytes:     b.RowBytes,
		HasMask:      boolByte(b.HasMask),
	}
	binary.Write(&buffer, binary.BigEndian, &header)

	if fields.compressed {
		buffer.WriteByte(boolByte(opts.Compressed))
	}
	if fields.padding {
		writePadding(&buffer)
	}

	for _, plane := range b.planes() {
		if opts.Compressed {
			compression.CompressRLE(bytes.NewReader(plane), &buffer)
		} else {
			buffer.Write(plane)
		}
	}
	return buffer.Bytes(), nil
}

// WriteBitmap serializes one bitmap record to w. The record is built in memory
// first, so nothing is written if encoding fails.
func WriteBitmap(w io.Writer, b *Bitmap, opts EncodeOptions) (int64, error) {
	record, err := EncodeBitmap(b, opts)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(record)
	return int64(n), err
}

// DecodeBitmap parses one bitmap record. Bytes following the record are
// ignored.
func DecodeBitmap(data []byte) (*Bitmap, error) {
	b, _, err := DecodeBitmapInfo(data)
	return b, err
}

// DecodeBitmapInfo parses one bitmap record and also reports how it was
// stored.
func DecodeBitmapInfo(data []byte) (*Bitmap, RecordInfo, error) {
	c := newCursor(data)
	info := RecordInfo{}

	rawHeader, err := c.take(rawBitmapHeaderSize, "bitmap header")
	if err != nil {
		return nil, info, err
	}
	var header rawBitmapHeader
	// Can't fail, the slice is exactly the size of the struct.
	binary.Read(bytes.NewReader(rawHeader), binary.BigEndian, &header)

	info.Version = Version(header.Version)
	if err := info.Version.Validate(); err != nil {
		return nil, info, err
	}

	fields := info.Version.fields()
	if fields.compressed {
		info.Compressed, err = c.readBool("compression flag")
		if err != nil {
			return nil, info, err
		}
	}
	if fields.padding {
		info.PaddingLength, err = c.readUint32("padding length")
		if err != nil {
			return nil, info, err
		}
		err = c.skip(int(info.PaddingLength), "padding")
		if err != nil {
			return nil, info, err
		}
	}
	info.HeaderLength = c.offset

	b := &Bitmap{
		FullWidth:    header.FullWidth,
		FullHeight:   header.FullHeight,
		BoundsX:      header.BoundsX,
		BoundsY:      header.BoundsY,
		BoundsWidth:  header.BoundsWidth,
		BoundsHeight: header.BoundsHeight,
		RowBytes:     header.RowBytes,
		HasMask:      header.HasMask != 0,
	}
	if msg := b.geometryError(); msg != "" {
		return nil, info, ErrCorruptData.WithMessage(msg)
	}

	b.PixelData, err = readPlane(c, b, info.Compressed, "pixel data")
	if err != nil {
		return nil, info, err
	}
	if b.HasMask {
		b.MaskData, err = readPlane(c, b, info.Compressed, "mask data")
		if err != nil {
			return nil, info, err
		}
	}

	info.BodyLength = c.offset - info.HeaderLength
	return b, info, nil
}

// ReadBitmap reads r to the end and decodes the bitmap record it holds.
func ReadBitmap(r io.Reader) (*Bitmap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrInvalidInput.Wrap(err)
	}
	return DecodeBitmap(data)
}

func readPlane(c *cursor, b *Bitmap, compressed bool, what string) ([]byte, error) {
	size := uint64(b.RowBytes) * uint64(b.BoundsHeight)

	if !compressed {
		if size > uint64(c.remaining()) {
			return nil, ErrCorruptData.WithMessage(
				fmt.Sprintf("%s: need %d bytes, only %d left", what, size, c.remaining()))
		}
		chunk, err := c.take(int(size), what)
		if err != nil {
			return nil, err
		}
		plane := make([]byte, len(chunk))
		copy(plane, chunk)
		return plane, nil
	}

	// Every two-byte record expands to at most MaxRunLength bytes. Checking
	// up front avoids allocating for absurd sizes in a corrupt header.
	maxExpanded := uint64(c.remaining()/2) * compression.MaxRunLength
	if size > maxExpanded {
		return nil, ErrCorruptData.WithMessage(
			fmt.Sprintf(
				"%s: %d compressed bytes can't expand to %d bytes",
				what,
				c.remaining(),
				size,
			),
		)
	}

	plane, consumed, err := compression.DecompressBytes(c.rest(), int(size))
	if err != nil {
		return nil, ErrCorruptData.WithMessage(what).Wrap(err)
	}
	c.advance(consumed)
	return plane, nil
}

// writePadding writes the padding length field and enough zero bytes after it
// to bring the buffer to a multiple of 32 bytes.
func writePadding(buffer *bytes.Buffer) {
	n := paddingLength(buffer.Len())
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(n))
	buffer.Write(length[:])
	buffer.Write(make([]byte, n))
}

func boolByte(value bool) byte {
	if value {
		return 1
	}
	return 0
}
