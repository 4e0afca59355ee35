package hebitmap

// Table is an ordered sequence of bitmaps written with one format version and
// compression setting, typically the frames of an animation.
type Table struct {
	Version    Version
	Compressed bool
	Bitmaps    []*Bitmap
}

// NewTable creates an empty table that will be encoded with opts.
func NewTable(opts EncodeOptions) *Table {
	return &Table{Version: opts.Version, Compressed: opts.Compressed}
}

// Append adds a bitmap at the end of the table.
func (t *Table) Append(b *Bitmap) {
	t.Bitmaps = append(t.Bitmaps, b)
}

// Len returns the number of bitmaps in the table.
func (t *Table) Len() int {
	return len(t.Bitmaps)
}

// At returns the bitmap at index i, or nil if i is out of range.
func (t *Table) At(i int) *Bitmap {
	if i < 0 || i >= len(t.Bitmaps) {
		return nil
	}
	return t.Bitmaps[i]
}

// TotalBufferLength is the number of bytes needed to hold every bitmap's
// expanded pixel and mask data at once. Nil entries count as empty.
func (t *Table) TotalBufferLength() uint64 {
	total := uint64(0)
	for _, b := range t.Bitmaps {
		if b == nil {
			continue
		}
		planeSize := uint64(b.RowBytes) * uint64(b.BoundsHeight)
		if b.HasMask {
			planeSize *= 2
		}
		total += planeSize
	}
	return total
}

func (t *Table) options() EncodeOptions {
	return EncodeOptions{Version: t.Version, Compressed: t.Compressed}
}
