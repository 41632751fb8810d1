package mpegc

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/jpfielding/mpegc.go/pkg/compress/dct"
)

// Options configures encoding and decoding
type Options struct {
	Quality uint8 // written to the header only (default: 130)
	Workers int   // goroutines per plane (default: runtime.NumCPU())
}

// DefaultOptions returns default options
func DefaultOptions() *Options {
	return &Options{
		Quality: DefaultQuality,
		Workers: runtime.NumCPU(),
	}
}

// Coefficients holds the quantized transform blocks of each plane. Each
// slice is NumBlocks*64 bytes of row-major blocks in raster block order.
type Coefficients struct {
	Width    int
	Height   int
	Sampling SamplingMode
	Blocks   [3][]byte
}

// PlaneSize returns the dimensions of plane p
func (c *Coefficients) PlaneSize(p int) (int, int) {
	if p == 0 {
		return c.Width, c.Height
	}
	return c.Sampling.ChromaSize(c.Width, c.Height)
}

// Forward transforms and quantizes every plane. Luminance uses the
// luminance table, both chroma planes share the chrominance table.
func Forward(im *Image, opts *Options) (*Coefficients, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}
	out := &Coefficients{Width: im.Width, Height: im.Height, Sampling: im.Sampling}
	for p, plane := range im.Planes {
		w, h := im.PlaneSize(p)
		pc := planeCodec(p, opts)
		blocks, err := pc.Encode(plane, w, h)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", p, err)
		}
		out.Blocks[p] = blocks
	}
	return out, nil
}

// Inverse dequantizes and inverse transforms every plane
func Inverse(c *Coefficients, opts *Options) (*Image, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := validate(c.Width, c.Height, c.Sampling); err != nil {
		return nil, err
	}
	im := &Image{Width: c.Width, Height: c.Height, Sampling: c.Sampling}
	for p, blocks := range c.Blocks {
		w, h := c.PlaneSize(p)
		pc := planeCodec(p, opts)
		plane, err := pc.Decode(blocks, w, h)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", p, err)
		}
		im.Planes[p] = plane
	}
	return im, nil
}

func planeCodec(p int, opts *Options) *dct.PlaneCodec {
	return dct.NewPlaneCodec(dct.TableFor(p), opts.Workers)
}

// Encode writes im to w as a container
func Encode(w io.Writer, im *Image, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	coeffs, err := Forward(im, opts)
	if err != nil {
		return err
	}
	h := Header{
		Width:    uint16(im.Width),
		Height:   uint16(im.Height),
		Quality:  opts.Quality,
		Sampling: im.Sampling,
	}
	n, err := WriteContainer(w, h, coeffs)
	if err != nil {
		return err
	}
	slog.Debug("encoded image",
		slog.Int("width", im.Width),
		slog.Int("height", im.Height),
		slog.String("sampling", im.Sampling.String()),
		slog.Int64("bytes", n))
	return nil
}

// Decode reads a container from r and reconstructs the image
func Decode(r io.Reader, opts *Options) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, opts)
}

// DecodeBytes reconstructs the image held in data
func DecodeBytes(data []byte, opts *Options) (*Image, error) {
	c, err := ReadContainer(data)
	if err != nil {
		return nil, err
	}
	return Inverse(c.Coefficients(), opts)
}

// EncodeBytes returns the container bytes for im
func EncodeBytes(im *Image, opts *Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, im, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes im into a new file at path
func WriteFile(path string, im *Image, opts *Options) (int64, error) {
	data, err := EncodeBytes(im, opts)
	if err != nil {
		return 0, err
	}
	slog.Debug("writing container", "path", path, "bytes", len(data))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// ReadFile decodes the container at path
func ReadFile(path string, opts *Options) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, opts)
}
