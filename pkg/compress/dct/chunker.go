package dct

// BlockSize is the edge length of a transform block
const BlockSize = 8

// BlockLen is the number of samples in one block
const BlockLen = BlockSize * BlockSize

// Chunker partitions a plane into square blocks in raster order.
//
// Edge blocks that extend past the plane are filled by replicating the
// nearest valid sample: the column is clamped to width-1 and the row to
// height-1. Writes into the padded area are dropped.
type Chunker struct {
	size   int
	width  int
	height int
	stride int
	step   int
	cols   int
	rows   int
}

// NewChunker creates a chunker for a plane of width x height samples where
// rows are stride bytes apart and samples are step bytes apart.
func NewChunker(size, width, height, stride, step int) *Chunker {
	if step < 1 {
		step = 1
	}
	if stride < width*step {
		stride = width * step
	}
	return &Chunker{
		size:   size,
		width:  width,
		height: height,
		stride: stride,
		step:   step,
		cols:   (width + size - 1) / size,
		rows:   (height + size - 1) / size,
	}
}

// NumBlocks returns ceil(width/size) * ceil(height/size)
func (c *Chunker) NumBlocks() int {
	return c.cols * c.rows
}

// Grid returns the number of block columns and rows
func (c *Chunker) Grid() (cols, rows int) {
	return c.cols, c.rows
}

// MinPlaneLen is the smallest backing buffer that holds the plane
func (c *Chunker) MinPlaneLen() int {
	if c.width == 0 || c.height == 0 {
		return 0
	}
	return (c.height-1)*c.stride + (c.width-1)*c.step + 1
}

// Origin returns the plane coordinates of the top-left sample of a block
func (c *Chunker) Origin(index int) (x, y int) {
	return (index % c.cols) * c.size, (index / c.cols) * c.size
}

// ReadBlock copies block index out of plane in row-major order into dst.
// A nil or short dst is replaced by a new slice.
func (c *Chunker) ReadBlock(plane []byte, index int, dst []byte) []byte {
	n := c.size * c.size
	if len(dst) < n {
		dst = make([]byte, n)
	}
	x0, y0 := c.Origin(index)
	for r := 0; r < c.size; r++ {
		y := min(y0+r, c.height-1)
		row := y * c.stride
		for col := 0; col < c.size; col++ {
			x := min(x0+col, c.width-1)
			dst[r*c.size+col] = plane[row+x*c.step]
		}
	}
	return dst[:n]
}

// WriteBlock stores block into plane at block index, skipping positions
// outside the plane.
func (c *Chunker) WriteBlock(plane []byte, index int, block []byte) {
	x0, y0 := c.Origin(index)
	h := min(c.size, c.height-y0)
	w := min(c.size, c.width-x0)
	for r := 0; r < h; r++ {
		row := (y0 + r) * c.stride
		for col := 0; col < w; col++ {
			plane[row+(x0+col)*c.step] = block[r*c.size+col]
		}
	}
}
