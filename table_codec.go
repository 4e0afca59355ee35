package hebitmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

type rawTableHeader struct {
	Version uint32
	Count   uint32
}

const rawTableHeaderSize = 8

// TableInfo describes how a table record was laid out on disk.
type TableInfo struct {
	Version    Version
	Compressed bool
	Count      uint32
	// TotalBufferLength is only stored by compressed tables of Version4 and
	// later; HasTotalBufferLength tells whether it was present.
	TotalBufferLength    uint32
	HasTotalBufferLength bool
	PaddingLength        uint32
	// Entries holds the layout of each bitmap record, in table order.
	Entries []RecordInfo
}

// EncodeTable serializes a table record. Every bitmap is encoded with the
// table's version and compression setting.
func EncodeTable(t *Table) ([]byte, error) {
	opts := t.options()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	for i, b := range t.Bitmaps {
		if b == nil {
			return nil, ErrInvalidInput.WithMessage(fmt.Sprintf("table entry %d is nil", i))
		}
	}

	fields := t.Version.fields()
	writeBufferLength := fields.bufferLength && t.Compressed
	totalBufferLength := t.TotalBufferLength()
	if writeBufferLength && totalBufferLength > math.MaxUint32 {
		return nil, ErrInvalidInput.WithMessage(
			fmt.Sprintf(
				"total buffer length %d doesn't fit in the table header", totalBufferLength))
	}

	var buffer bytes.Buffer

	header := rawTableHeader{Version: uint32(t.Version), Count: uint32(t.Len())}
	binary.Write(&buffer, binary.BigEndian, &header)

	if fields.compressed {
		buffer.WriteByte(boolByte(t.Compressed))
	}
	if writeBufferLength {
		binary.Write(&buffer, binary.BigEndian, uint32(totalBufferLength))
	}
	if fields.padding {
		writePadding(&buffer)
	}

	for i, b := range t.Bitmaps {
		record, err := EncodeBitmap(b, opts)
		if err != nil {
			return nil, fmt.Errorf("table entry %d: %w", i, err)
		}
		binary.Write(&buffer, binary.BigEndian, uint32(len(record)))
		buffer.Write(record)
	}
	return buffer.Bytes(), nil
}

// WriteTable serializes a table record to w. Nothing is written if encoding
// fails.
func WriteTable(w io.Writer, t *Table) (int64, error) {
	record, err := EncodeTable(t)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(record)
	return int64(n), err
}

// DecodeTable parses a table record.
func DecodeTable(data []byte) (*Table, error) {
	t, _, err := DecodeTableInfo(data)
	return t, err
}

// DecodeTableInfo parses a table record and also reports how it was stored.
//
// Each entry is decoded according to its own header, even if that disagrees
// with the table header.
func DecodeTableInfo(data []byte) (*Table, TableInfo, error) {
	c := newCursor(data)
	info := TableInfo{}

	rawHeader, err := c.take(rawTableHeaderSize, "table header")
	if err != nil {
		return nil, info, err
	}
	var header rawTableHeader
	binary.Read(bytes.NewReader(rawHeader), binary.BigEndian, &header)

	info.Version = Version(header.Version)
	info.Count = header.Count
	if err := info.Version.Validate(); err != nil {
		return nil, info, err
	}

	fields := info.Version.fields()
	if fields.compressed {
		info.Compressed, err = c.readBool("table compression flag")
		if err != nil {
			return nil, info, err
		}
	}
	if fields.bufferLength && info.Compressed {
		info.TotalBufferLength, err = c.readUint32("table buffer length")
		if err != nil {
			return nil, info, err
		}
		info.HasTotalBufferLength = true
	}
	if fields.padding {
		info.PaddingLength, err = c.readUint32("table padding length")
		if err != nil {
			return nil, info, err
		}
		err = c.skip(int(info.PaddingLength), "table padding")
		if err != nil {
			return nil, info, err
		}
	}

	// Each entry takes at least its 4-byte length, which bounds how many
	// can possibly be present.
	capacity := int(header.Count)
	if maxEntries := c.remaining() / 4; capacity > maxEntries || capacity < 0 {
		capacity = maxEntries
	}
	t := &Table{
		Version:    info.Version,
		Compressed: info.Compressed,
		Bitmaps:    make([]*Bitmap, 0, capacity),
	}
	info.Entries = make([]RecordInfo, 0, capacity)

	for i := uint32(0); i < header.Count; i++ {
		entryLength, err := c.readUint32(fmt.Sprintf("length of table entry %d", i))
		if err != nil {
			return nil, info, err
		}
		entry, err := c.take(int(entryLength), fmt.Sprintf("table entry %d", i))
		if err != nil {
			return nil, info, err
		}

		b, entryInfo, err := DecodeBitmapInfo(entry)
		if err != nil {
			return nil, info, fmt.Errorf("table entry %d: %w", i, err)
		}
		t.Append(b)
		info.Entries = append(info.Entries, entryInfo)
	}
	return t, info, nil
}

// ReadTable reads r to the end and decodes the table record it holds.
func ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrInvalidInput.Wrap(err)
	}
	return DecodeTable(data)
}
