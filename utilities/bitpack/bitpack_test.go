package bitpack_test

import (
	"math/rand"
	"testing"

	"github.com/risolvipro/HEBitmap/utilities/bitpack"
	"github.com/stretchr/testify/assert"
)

func TestRowBytes(t *testing.T) {
	tests := []struct {
		Width    int
		Expected int
	}{
		{0, 0},
		{1, 4},
		{31, 4},
		{32, 4},
		{33, 8},
		{400, 52},
	}
	for _, test := range tests {
		assert.Equal(t, test.Expected, bitpack.RowBytes(test.Width), "width %d", test.Width)
	}
}

func TestPack__MSBFirst(t *testing.T) {
	bits := []byte{1, 0, 0, 0, 0, 0, 0, 1, 1, 1}
	packed := bitpack.Pack(bits, 10, 4)
	assert.Equal(t, []byte{0x81, 0xc0, 0, 0}, packed)
}

func TestPack__RowsArePadded(t *testing.T) {
	// Two rows of three pixels each; every row gets its own 4-byte word.
	bits := []byte{1, 1, 1, 0, 1, 0}
	packed := bitpack.Pack(bits, 3, 4)
	assert.Equal(t, []byte{0xe0, 0, 0, 0, 0x40, 0, 0, 0}, packed)
}

func TestPack__Empty(t *testing.T) {
	assert.Empty(t, bitpack.Pack(nil, 0, 0))
	assert.Empty(t, bitpack.Pack([]byte{}, 8, 4))
}

func TestUnpack(t *testing.T) {
	assert.Equal(
		t,
		[]byte{1, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0},
		bitpack.Unpack([]byte{0xa1, 0x00}),
	)
}

func TestPackUnpackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, rowBytes := range []int{4, 8, 12} {
		for _, height := range []int{1, 3, 17} {
			bits := make([]byte, rowBytes*8*height)
			for i := range bits {
				bits[i] = byte(rng.Intn(2))
			}

			packed := bitpack.Pack(bits, rowBytes*8, rowBytes)
			assert.Len(t, packed, rowBytes*height)
			assert.Equal(t, bits, bitpack.Unpack(packed), "rowBytes=%d height=%d", rowBytes, height)
		}
	}
}

func TestGet(t *testing.T) {
	bits := make([]byte, 64*2)
	bits[5] = 1
	bits[64+33] = 1
	packed := bitpack.Pack(bits, 64, 8)

	assert.True(t, bitpack.Get(packed, 8, 5, 0))
	assert.True(t, bitpack.Get(packed, 8, 33, 1))
	assert.False(t, bitpack.Get(packed, 8, 4, 0))
	assert.False(t, bitpack.Get(packed, 8, 33, 0))
}
