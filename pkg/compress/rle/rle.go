package rle

import (
	"errors"
	"fmt"
)

// Escape-token run-length coding for signed-byte coefficients.
//
// A byte other than Token is a literal emitted once. Token starts a triple
// [Token, count, value] that emits value count times. Runs of 3 or more and
// every occurrence of the Token value itself use the triple; runs of 2 are
// written as two literals.

// Token is the reserved escape byte (int8 -128 in the stored cell)
const Token byte = 128

// maxRun is the largest count a triple can carry
const maxRun = 255

var (
	ErrTruncatedStream = errors.New("rle: truncated stream")
	ErrCorruptEscape   = errors.New("rle: corrupt escape")
)

// Encode appends the run-length coding of seq to dst
func Encode(dst, seq []byte) []byte {
	if len(seq) == 0 {
		return dst
	}
	prev := seq[0]
	count := 0
	for _, v := range seq {
		if v == prev && count < maxRun {
			count++
			continue
		}
		dst = flush(dst, prev, count)
		prev, count = v, 1
	}
	return flush(dst, prev, count)
}

func flush(dst []byte, prev byte, count int) []byte {
	switch {
	case prev == Token || count >= 3:
		return append(dst, Token, byte(count), prev)
	case count == 2:
		return append(dst, prev, prev)
	default:
		return append(dst, prev)
	}
}

// Decode reads exactly n values from the front of src and reports how many
// bytes it consumed.
func Decode(src []byte, n int) ([]byte, int, error) {
	d := NewDecoder(src)
	out := make([]byte, n)
	if err := d.ReadSeq(out); err != nil {
		return nil, d.Offset(), err
	}
	return out, d.Offset(), nil
}

// Decoder reads consecutive run-length coded sequences from one buffer.
// Sequence boundaries are not marked in the stream; the caller supplies the
// length of each sequence.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder creates a decoder positioned at the start of data
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Offset is the number of bytes consumed so far
func (d *Decoder) Offset() int {
	return d.pos
}

// Remaining is the number of unread bytes
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// ReadSeq fills dst with exactly len(dst) decoded values. A run may not
// extend past the end of dst.
func (d *Decoder) ReadSeq(dst []byte) error {
	n := 0
	for n < len(dst) {
		if d.pos >= len(d.data) {
			return fmt.Errorf("%w: got %d of %d values at offset %d", ErrTruncatedStream, n, len(dst), d.pos)
		}
		b := d.data[d.pos]
		d.pos++
		if b != Token {
			dst[n] = b
			n++
			continue
		}
		if d.pos+2 > len(d.data) {
			return fmt.Errorf("%w: escape at offset %d is missing its count or value", ErrCorruptEscape, d.pos-1)
		}
		count := int(d.data[d.pos])
		val := d.data[d.pos+1]
		if count == 0 || n+count > len(dst) {
			return fmt.Errorf("%w: run of %d at offset %d overflows %d remaining values", ErrCorruptEscape, count, d.pos-1, len(dst)-n)
		}
		d.pos += 2
		for k := 0; k < count; k++ {
			dst[n+k] = val
		}
		n += count
	}
	return nil
}
