package mpegc

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/jpfielding/mpegc.go/pkg/compress/dct"
	"github.com/jpfielding/mpegc.go/pkg/compress/rle"
)

// HeaderLen is the fixed size of the container header
const HeaderLen = 6

// DefaultQuality is the placeholder written to the quality byte. It does not
// describe the quantization tables in use.
const DefaultQuality uint8 = 130

// Header is the container preamble:
//
//	width   u16 little endian
//	height  u16 little endian
//	quality u8
//	mode    u8
type Header struct {
	Width    uint16       `json:"width"`
	Height   uint16       `json:"height"`
	Quality  uint8        `json:"quality"`
	Sampling SamplingMode `json:"sampling"`
}

// MarshalBinary implements encoding.BinaryMarshaler
func (h Header) MarshalBinary() ([]byte, error) {
	if err := validate(int(h.Width), int(h.Height), h.Sampling); err != nil {
		return nil, err
	}
	b := make([]byte, 0, HeaderLen)
	b = binary.LittleEndian.AppendUint16(b, h.Width)
	b = binary.LittleEndian.AppendUint16(b, h.Height)
	return append(b, h.Quality, byte(h.Sampling)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderLen {
		return fmt.Errorf("%w: %d bytes", ErrShortHeader, len(b))
	}
	hdr := Header{
		Width:    binary.LittleEndian.Uint16(b[0:2]),
		Height:   binary.LittleEndian.Uint16(b[2:4]),
		Quality:  b[4],
		Sampling: SamplingMode(b[5]),
	}
	if err := validate(int(hdr.Width), int(hdr.Height), hdr.Sampling); err != nil {
		return err
	}
	*h = hdr
	return nil
}

// PlaneSize returns the dimensions of plane p
func (h Header) PlaneSize(p int) (int, int) {
	if p == 0 {
		return int(h.Width), int(h.Height)
	}
	return h.Sampling.ChromaSize(int(h.Width), int(h.Height))
}

// BlockCounts returns the number of 8x8 blocks in each plane
func (h Header) BlockCounts() [3]int {
	var n [3]int
	for p := range n {
		w, ht := h.PlaneSize(p)
		n[p] = dct.NumBlocks(w, ht)
	}
	return n
}

// Container is a parsed byte stream: the header, the raw run-length coded
// section of each plane and the coefficient blocks they decode to.
type Container struct {
	Header   Header
	Sections [3][]byte
	Blocks   [3][]byte
	// Trailing counts bytes after the last section
	Trailing int
}

// WriteContainer writes the header followed by the luminance section and the
// two chrominance sections. It returns the number of bytes written.
func WriteContainer(w io.Writer, h Header, c *Coefficients) (int64, error) {
	cw := &CountingWriter{Writer: w}
	hdr, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}
	counts := h.BlockCounts()
	for p, blocks := range c.Blocks {
		if len(blocks) < counts[p]*dct.BlockLen {
			return 0, fmt.Errorf("%w: plane %d has %d coefficients, want %d", ErrPlaneSize, p, len(blocks), counts[p]*dct.BlockLen)
		}
	}

	bw := bufio.NewWriter(cw)
	if _, err := bw.Write(hdr); err != nil {
		return cw.Count.Load(), err
	}
	var section []byte
	for p, blocks := range c.Blocks {
		section = rle.EncodeBlocks(section[:0], blocks[:counts[p]*dct.BlockLen])
		if _, err := bw.Write(section); err != nil {
			return cw.Count.Load(), err
		}
		slog.Debug("wrote plane section",
			slog.Int("plane", p),
			slog.Int("blocks", counts[p]),
			slog.Int("bytes", len(section)))
	}
	if err := bw.Flush(); err != nil {
		return cw.Count.Load(), err
	}
	return cw.Count.Load(), nil
}

// ReadContainer parses a complete container. Section lengths are not stored,
// so each section is found by decoding exactly the number of blocks the
// header implies.
func ReadContainer(data []byte) (*Container, error) {
	c := &Container{}
	if err := c.Header.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	body := data[HeaderLen:]
	d := rle.NewDecoder(body)
	counts := c.Header.BlockCounts()
	for p := range c.Blocks {
		start := d.Offset()
		blocks, err := d.ReadBlocks(counts[p])
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", p, err)
		}
		c.Blocks[p] = blocks
		c.Sections[p] = body[start:d.Offset()]
	}
	c.Trailing = d.Remaining()
	if c.Trailing > 0 {
		slog.Warn("trailing bytes after last plane", slog.Int("bytes", c.Trailing))
	}
	return c, nil
}

// Coefficients returns the decoded blocks with the header's geometry
func (c *Container) Coefficients() *Coefficients {
	return &Coefficients{
		Width:    int(c.Header.Width),
		Height:   int(c.Header.Height),
		Sampling: c.Header.Sampling,
		Blocks:   c.Blocks,
	}
}

// Info summarizes a container without decoding its planes
type Info struct {
	Header
	Blocks [3]int `json:"blocks"`
}

// Inspect reads only the header from r
func Inspect(r io.Reader) (*Info, error) {
	buf := make([]byte, HeaderLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	var h Header
	if err := h.UnmarshalBinary(buf[:n]); err != nil {
		return nil, err
	}
	return &Info{Header: h, Blocks: h.BlockCounts()}, nil
}

// CountingWriter tracks the bytes passed to Writer
type CountingWriter struct {
	Count  atomic.Int64
	Writer io.Writer
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.Writer.Write(p)
	if err == nil {
		c.Count.Add(int64(n))
	}
	return n, err
}
