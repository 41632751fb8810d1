package dct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(w, h int) []byte {
	p := make([]byte, w*h)
	for i := range p {
		p[i] = byte(i)
	}
	return p
}

func TestChunker_NumBlocks(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		blocks int
	}{
		{"1x1", 1, 1, 1},
		{"8x8", 8, 8, 1},
		{"9x8", 9, 8, 2},
		{"9x9", 9, 9, 4},
		{"16x16", 16, 16, 4},
		{"17x3", 17, 3, 3},
		{"100x60", 100, 60, 13 * 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(BlockSize, tt.w, tt.h, tt.w, 1)
			assert.Equal(t, tt.blocks, c.NumBlocks())
			assert.Equal(t, tt.blocks, NumBlocks(tt.w, tt.h))
		})
	}
}

func TestChunker_ReadBlockInterior(t *testing.T) {
	w, h := 16, 16
	plane := ramp(w, h)
	c := NewChunker(BlockSize, w, h, w, 1)

	// block 3 is the bottom-right tile
	blk := c.ReadBlock(plane, 3, nil)
	require.Len(t, blk, BlockLen)
	for r := 0; r < BlockSize; r++ {
		for col := 0; col < BlockSize; col++ {
			assert.Equal(t, plane[(8+r)*w+8+col], blk[r*BlockSize+col])
		}
	}
}

func TestChunker_EdgeReplicates(t *testing.T) {
	w, h := 10, 10
	plane := ramp(w, h)
	c := NewChunker(BlockSize, w, h, w, 1)
	require.Equal(t, 4, c.NumBlocks())

	// block 3 covers columns 8..15 and rows 8..15; only 8..9 exist
	blk := c.ReadBlock(plane, 3, nil)
	for r := 0; r < BlockSize; r++ {
		y := min(8+r, h-1)
		for col := 0; col < BlockSize; col++ {
			x := min(8+col, w-1)
			assert.Equal(t, plane[y*w+x], blk[r*BlockSize+col], "r=%d c=%d", r, col)
		}
	}
	// the padded corner repeats the last real sample
	assert.Equal(t, plane[99], blk[BlockLen-1])
}

func TestChunker_WriteDropsPadding(t *testing.T) {
	w, h := 10, 10
	plane := make([]byte, w*h)
	c := NewChunker(BlockSize, w, h, w, 1)

	blk := make([]byte, BlockLen)
	for i := range blk {
		blk[i] = 0xFF
	}
	c.WriteBlock(plane, 3, blk)

	written := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if plane[y*w+x] == 0xFF {
				written++
				assert.True(t, x >= 8 && y >= 8, "unexpected write at %d,%d", x, y)
			}
		}
	}
	assert.Equal(t, 4, written)
}

func TestChunker_RoundTripCoversPlane(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {7, 3}, {8, 8}, {13, 11}, {33, 17}} {
		w, h := dims[0], dims[1]
		plane := ramp(w, h)
		out := make([]byte, w*h)
		c := NewChunker(BlockSize, w, h, w, 1)
		for i := 0; i < c.NumBlocks(); i++ {
			c.WriteBlock(out, i, c.ReadBlock(plane, i, nil))
		}
		assert.Equal(t, plane, out, "%dx%d", w, h)
	}
}

func TestChunker_StrideAndStep(t *testing.T) {
	// two interleaved 8x8 planes in rows of 20 bytes (4 bytes of row padding)
	w, h, stride := 8, 8, 20
	buf := make([]byte, stride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*stride+2*x] = byte(y*w + x)
			buf[y*stride+2*x+1] = 0xEE
		}
	}
	c := NewChunker(BlockSize, w, h, stride, 2)
	assert.Equal(t, (h-1)*stride+(w-1)*2+1, c.MinPlaneLen())

	blk := c.ReadBlock(buf, 0, nil)
	assert.Equal(t, ramp(w, h), blk)

	for i := range blk {
		blk[i] = 0
	}
	c.WriteBlock(buf, 0, blk)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			assert.Equal(t, byte(0), buf[y*stride+2*x])
			assert.Equal(t, byte(0xEE), buf[y*stride+2*x+1])
		}
	}
}

func TestChunker_Origin(t *testing.T) {
	c := NewChunker(BlockSize, 20, 20, 20, 1)
	cols, rows := c.Grid()
	assert.Equal(t, 3, cols)
	assert.Equal(t, 3, rows)

	x, y := c.Origin(4)
	assert.Equal(t, 8, x)
	assert.Equal(t, 8, y)
	x, y = c.Origin(6)
	assert.Equal(t, 0, x)
	assert.Equal(t, 16, y)
}
