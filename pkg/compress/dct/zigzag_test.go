package dct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classic JPEG scan order
var classicZigZag = [BlockLen]int{
	0, 1, 8, 16, 9, 2, 3, 10, 17, 24, 32, 25, 18,
	11, 4, 5, 12, 19, 26, 33, 40, 48, 41, 34, 27, 20, 13, 6, 7, 14, 21, 28, 35,
	42, 49, 56, 57, 50, 43, 36, 29, 22, 15, 23, 30, 37, 44, 51, 58, 59, 52, 45,
	38, 31, 39, 46, 53, 60, 61, 54, 47, 55, 62, 63,
}

func TestZigZagOrder_Classic(t *testing.T) {
	assert.Equal(t, classicZigZag, ZigZagOrder())

	// (0,0),(0,1),(1,0),(2,0),(1,1),(0,2)
	order := ZigZagOrder()
	want := [][2]int{{0, 0}, {0, 1}, {1, 0}, {2, 0}, {1, 1}, {0, 2}}
	for k, rc := range want {
		assert.Equal(t, rc[0]*BlockSize+rc[1], order[k])
	}
}

func TestZigZagOrder_Bijection(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 8, 16} {
		order := zigZagIndex(n)
		require.Len(t, order, n*n)
		seen := make([]bool, n*n)
		for _, off := range order {
			require.False(t, seen[off], "n=%d offset %d repeated", n, off)
			seen[off] = true
		}
		inv := invert(order)
		for k, off := range order {
			assert.Equal(t, k, inv[off])
		}
	}
}

func TestZigZag_RoundTrip(t *testing.T) {
	block := make([]byte, BlockLen)
	for i := range block {
		block[i] = byte(i * 3)
	}
	seq := ToZigZag(nil, block)
	assert.Equal(t, block[8], seq[2])
	assert.Equal(t, block[16], seq[3])
	assert.Equal(t, block[63], seq[63])

	back := FromZigZag(nil, seq)
	assert.Equal(t, block, back)
}

func TestChunker_ZigZagOrder(t *testing.T) {
	c := NewChunker(BlockSize, 8, 8, 8, 1)
	assert.Equal(t, classicZigZag[:], c.ZigZagOrder())

	c4 := NewChunker(4, 4, 4, 4, 1)
	assert.Equal(t, []int{0, 1, 4, 8, 5, 2, 3, 6, 9, 12, 13, 10, 7, 11, 14, 15}, c4.ZigZagOrder())
}
