package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/risolvipro/HEBitmap"
)

// RecordSummary is one row of an inspection report, describing a single
// bitmap record.
type RecordSummary struct {
	// Entry is the 1-based position of the record in its table, or 0 for a
	// standalone bitmap file.
	Entry         int    `csv:"entry"`
	Version       uint32 `csv:"version"`
	Compressed    bool   `csv:"compressed"`
	RecordLength  int    `csv:"record_length"`
	HeaderLength  int    `csv:"header_length"`
	PaddingLength uint32 `csv:"padding_length"`
	FullWidth     uint32 `csv:"full_width"`
	FullHeight    uint32 `csv:"full_height"`
	BoundsX       uint32 `csv:"bounds_x"`
	BoundsY       uint32 `csv:"bounds_y"`
	BoundsWidth   uint32 `csv:"bounds_width"`
	BoundsHeight  uint32 `csv:"bounds_height"`
	RowBytes      uint32 `csv:"row_bytes"`
	HasMask       bool   `csv:"has_mask"`
}

// Report is the result of inspecting a `.heb` or `.hebt` file.
type Report struct {
	Path string
	// Table is nil unless the file holds a table record.
	Table   *hebitmap.TableInfo
	Records []RecordSummary
}

func summarize(entry int, b *hebitmap.Bitmap, info hebitmap.RecordInfo) RecordSummary {
	return RecordSummary{
		Entry:         entry,
		Version:       uint32(info.Version),
		Compressed:    info.Compressed,
		RecordLength:  info.Length(),
		HeaderLength:  info.HeaderLength,
		PaddingLength: info.PaddingLength,
		FullWidth:     b.FullWidth,
		FullHeight:    b.FullHeight,
		BoundsX:       b.BoundsX,
		BoundsY:       b.BoundsY,
		BoundsWidth:   b.BoundsWidth,
		BoundsHeight:  b.BoundsHeight,
		RowBytes:      b.RowBytes,
		HasMask:       b.HasMask,
	}
}

// Inspect decodes a `.heb` or `.hebt` file and reports how each record in it
// is laid out.
func Inspect(input string, opts Options) (*Report, error) {
	resolved, _, err := opts.resolve(input)
	if err != nil {
		return nil, err
	}

	extension := strings.ToLower(filepath.Ext(resolved))
	if extension != BitmapExtension && extension != TableExtension {
		return nil, hebitmap.ErrInvalidInput.WithMessage(
			fmt.Sprintf("%s: expected a %s or %s file", resolved, BitmapExtension, TableExtension))
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, hebitmap.ErrInvalidInput.Wrap(err)
	}

	report := &Report{Path: resolved}
	if extension == BitmapExtension {
		b, info, err := hebitmap.DecodeBitmapInfo(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", resolved, err)
		}
		report.Records = []RecordSummary{summarize(0, b, info)}
		return report, nil
	}

	table, tableInfo, err := hebitmap.DecodeTableInfo(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", resolved, err)
	}
	report.Table = &tableInfo
	report.Records = make([]RecordSummary, 0, table.Len())
	for i, b := range table.Bitmaps {
		report.Records = append(report.Records, summarize(i+1, b, tableInfo.Entries[i]))
	}
	return report, nil
}

// WriteCSV writes one row per record, with a header row.
func (r *Report) WriteCSV(w io.Writer) error {
	return gocsv.Marshal(r.Records, w)
}

// WriteText writes a human-readable description of the report.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", r.Path); err != nil {
		return err
	}

	if r.Table != nil {
		_, err := fmt.Fprintf(
			w,
			"table: %s, compressed=%t, %d entries, padding=%d",
			r.Table.Version,
			r.Table.Compressed,
			r.Table.Count,
			r.Table.PaddingLength,
		)
		if err != nil {
			return err
		}
		if r.Table.HasTotalBufferLength {
			if _, err := fmt.Fprintf(w, ", buffer=%d", r.Table.TotalBufferLength); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	for _, record := range r.Records {
		prefix := "bitmap"
		if r.Table != nil {
			prefix = fmt.Sprintf("  entry %d", record.Entry)
		}
		_, err := fmt.Fprintf(
			w,
			"%s: v%d, compressed=%t, %d bytes, canvas %dx%d, bounds (%d, %d) %dx%d, row=%d, mask=%t\n",
			prefix,
			record.Version,
			record.Compressed,
			record.RecordLength,
			record.FullWidth,
			record.FullHeight,
			record.BoundsX,
			record.BoundsY,
			record.BoundsWidth,
			record.BoundsHeight,
			record.RowBytes,
			record.HasMask,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
