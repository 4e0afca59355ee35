package hebitmap

import (
	"encoding/binary"
	"fmt"
)

// cursor reads big-endian fields from a byte slice. Every read is bounds
// checked and fails with ErrCorruptData instead of running off the end.
type cursor struct {
	data   []byte
	offset int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) remaining() int {
	return len(c.data) - c.offset
}

func (c *cursor) take(size int, what string) ([]byte, error) {
	if size < 0 || size > c.remaining() {
		return nil, ErrCorruptData.WithMessage(
			fmt.Sprintf(
				"%s: need %d bytes at offset %d, only %d left",
				what,
				size,
				c.offset,
				c.remaining(),
			),
		)
	}
	chunk := c.data[c.offset : c.offset+size]
	c.offset += size
	return chunk, nil
}

func (c *cursor) readUint32(what string) (uint32, error) {
	chunk, err := c.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(chunk), nil
}

func (c *cursor) readBool(what string) (bool, error) {
	chunk, err := c.take(1, what)
	if err != nil {
		return false, err
	}
	return chunk[0] != 0, nil
}

func (c *cursor) skip(size int, what string) error {
	_, err := c.take(size, what)
	return err
}

// rest returns everything that hasn't been consumed yet without advancing.
func (c *cursor) rest() []byte {
	return c.data[c.offset:]
}

func (c *cursor) advance(size int) {
	c.offset += size
}
