package rle

import (
	"fmt"

	"github.com/jpfielding/mpegc.go/pkg/compress/dct"
)

// EncodeBlock appends the coding of one row-major 8x8 coefficient block,
// scanned in zig-zag order.
func EncodeBlock(dst, block []byte) []byte {
	var seq [dct.BlockLen]byte
	return Encode(dst, dct.ToZigZag(seq[:], block))
}

// EncodeBlocks codes consecutive 64-value blocks
func EncodeBlocks(dst, coeffs []byte) []byte {
	for off := 0; off+dct.BlockLen <= len(coeffs); off += dct.BlockLen {
		dst = EncodeBlock(dst, coeffs[off:off+dct.BlockLen])
	}
	return dst
}

// ReadBlock decodes one block into dst in row-major order
func (d *Decoder) ReadBlock(dst []byte) error {
	var seq [dct.BlockLen]byte
	if err := d.ReadSeq(seq[:]); err != nil {
		return err
	}
	dct.FromZigZag(dst, seq[:])
	return nil
}

// ReadBlocks decodes n consecutive blocks
func (d *Decoder) ReadBlocks(n int) ([]byte, error) {
	out := make([]byte, n*dct.BlockLen)
	for i := 0; i < n; i++ {
		if err := d.ReadBlock(out[i*dct.BlockLen : (i+1)*dct.BlockLen]); err != nil {
			return nil, fmt.Errorf("block %d of %d: %w", i, n, err)
		}
	}
	return out, nil
}
