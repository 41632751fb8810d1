package dct

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

var (
	ErrInvalidDimensions = errors.New("dct: invalid dimensions")
	ErrPlaneSize         = errors.New("dct: plane smaller than its dimensions")
)

// PlaneCodec runs the block transform over every block of one plane.
// Blocks are independent and are split across Workers goroutines.
type PlaneCodec struct {
	Table   *QuantTable
	Workers int
}

// NewPlaneCodec creates a codec bound to a copy of q
func NewPlaneCodec(q QuantTable, workers int) *PlaneCodec {
	return &PlaneCodec{Table: &q, Workers: workers}
}

// EncodePlane transforms a width x height plane with stride width and
// returns NumBlocks*64 coefficients, one row-major block after another in
// raster block order.
func EncodePlane(samples []byte, width, height int, q QuantTable) ([]byte, error) {
	return NewPlaneCodec(q, 0).Encode(samples, width, height)
}

// DecodePlane is the inverse of EncodePlane
func DecodePlane(coeffs []byte, width, height int, q QuantTable) ([]byte, error) {
	return NewPlaneCodec(q, 0).Decode(coeffs, width, height)
}

// NumBlocks returns the block count for a width x height plane
func NumBlocks(width, height int) int {
	return ((width + BlockSize - 1) / BlockSize) * ((height + BlockSize - 1) / BlockSize)
}

// Encode runs Forward on each block of samples
func (pc *PlaneCodec) Encode(samples []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	c := NewChunker(BlockSize, width, height, width, 1)
	if len(samples) < c.MinPlaneLen() {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrPlaneSize, len(samples), c.MinPlaneLen())
	}
	out := make([]byte, c.NumBlocks()*BlockLen)
	pc.run(c.NumBlocks(), func(idx int, scratch []byte) {
		blk := c.ReadBlock(samples, idx, scratch)
		Forward(out[idx*BlockLen:(idx+1)*BlockLen], blk, pc.Table)
	})
	slog.Debug("encoded plane",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("blocks", c.NumBlocks()))
	return out, nil
}

// Decode runs Inverse on each coefficient block and reassembles the plane
func (pc *PlaneCodec) Decode(coeffs []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	c := NewChunker(BlockSize, width, height, width, 1)
	if len(coeffs) < c.NumBlocks()*BlockLen {
		return nil, fmt.Errorf("%w: have %d coefficients, need %d", ErrPlaneSize, len(coeffs), c.NumBlocks()*BlockLen)
	}
	out := make([]byte, width*height)
	pc.run(c.NumBlocks(), func(idx int, scratch []byte) {
		blk := Inverse(scratch, coeffs[idx*BlockLen:(idx+1)*BlockLen], pc.Table)
		// blocks never share a plane position, so concurrent writes are disjoint
		c.WriteBlock(out, idx, blk)
	})
	slog.Debug("decoded plane",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("blocks", c.NumBlocks()))
	return out, nil
}

// run calls fn for every block index, striping the range across workers.
// Each worker owns its scratch block.
func (pc *PlaneCodec) run(blocks int, fn func(idx int, scratch []byte)) {
	workers := pc.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > blocks {
		workers = blocks
	}
	if workers <= 1 {
		scratch := make([]byte, BlockLen)
		for idx := 0; idx < blocks; idx++ {
			fn(idx, scratch)
		}
		return
	}

	perWorker := (blocks + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * perWorker
		if lo >= blocks {
			break
		}
		hi := min(lo+perWorker, blocks)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			scratch := make([]byte, BlockLen)
			for idx := lo; idx < hi; idx++ {
				fn(idx, scratch)
			}
		}(lo, hi)
	}
	wg.Wait()
}
