package dct

// zigZag8 maps a zig-zag position to its row-major offset in an 8x8 block
var zigZag8 = zigZagIndex(BlockSize)

// unZigZag8 maps a row-major offset to its zig-zag position
var unZigZag8 = invert(zigZag8)

// ZigZagOrder returns the 8x8 zig-zag scan: element k is the row-major
// offset of the k-th scanned position.
func ZigZagOrder() [BlockLen]int {
	var out [BlockLen]int
	copy(out[:], zigZag8)
	return out
}

// ZigZagOrder returns the zig-zag scan for this chunker's block size
func (c *Chunker) ZigZagOrder() []int {
	if c.size == BlockSize {
		out := make([]int, BlockLen)
		copy(out, zigZag8)
		return out
	}
	return zigZagIndex(c.size)
}

// ToZigZag reorders a row-major block into scan order
func ToZigZag(dst, block []byte) []byte {
	if len(dst) < BlockLen {
		dst = make([]byte, BlockLen)
	}
	for k, off := range zigZag8 {
		dst[k] = block[off]
	}
	return dst[:BlockLen]
}

// FromZigZag reorders a scan-ordered sequence back into a row-major block
func FromZigZag(dst, seq []byte) []byte {
	if len(dst) < BlockLen {
		dst = make([]byte, BlockLen)
	}
	for off, k := range unZigZag8 {
		dst[off] = seq[k]
	}
	return dst[:BlockLen]
}

// zigZagIndex walks the anti-diagonals of an n x n block, alternating
// direction: even diagonals run bottom-left to top-right, odd ones the
// other way.
func zigZagIndex(n int) []int {
	order := make([]int, 0, n*n)
	for s := 0; s <= 2*(n-1); s++ {
		lo := max(0, s-(n-1))
		hi := min(s, n-1)
		if s%2 == 0 {
			for row := hi; row >= lo; row-- {
				order = append(order, row*n+(s-row))
			}
		} else {
			for row := lo; row <= hi; row++ {
				order = append(order, row*n+(s-row))
			}
		}
	}
	return order
}

func invert(perm []int) []int {
	inv := make([]int, len(perm))
	for k, off := range perm {
		inv[off] = k
	}
	return inv
}
