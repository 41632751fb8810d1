package mpegc

import (
	"fmt"
	"math"
	"strings"
)

// SamplingMode selects the chroma plane resolution
type SamplingMode uint8

const (
	// SamplingFull keeps chroma at W x H (4:4:4)
	SamplingFull SamplingMode = 0
	// SamplingSubsampled halves chroma in both directions, rounding up (4:2:0)
	SamplingSubsampled SamplingMode = 1
)

// Valid reports whether m is a defined mode
func (m SamplingMode) Valid() bool {
	return m == SamplingFull || m == SamplingSubsampled
}

func (m SamplingMode) String() string {
	switch m {
	case SamplingFull:
		return "4:4:4"
	case SamplingSubsampled:
		return "4:2:0"
	default:
		return fmt.Sprintf("SamplingMode(%d)", uint8(m))
	}
}

// MarshalText implements encoding.TextMarshaler
func (m SamplingMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSamplingMode, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText accepts "4:4:4"/"full" and "4:2:0"/"subsampled"
func (m *SamplingMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "4:4:4", "444", "full":
		*m = SamplingFull
	case "4:2:0", "420", "subsampled":
		*m = SamplingSubsampled
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedSamplingMode, text)
	}
	return nil
}

// ChromaSize returns the chroma plane dimensions for a width x height image
func (m SamplingMode) ChromaSize(width, height int) (int, int) {
	if m == SamplingSubsampled {
		return (width + 1) / 2, (height + 1) / 2
	}
	return width, height
}

// Image is a three plane image of level-shifted samples: each byte holds a
// signed value in [-128, 127]. Plane 0 is luminance, planes 1 and 2 are
// chrominance. Rows are packed (stride == plane width).
type Image struct {
	Width    int
	Height   int
	Sampling SamplingMode
	Planes   [3][]byte
}

// NewImage allocates a zeroed image
func NewImage(width, height int, mode SamplingMode) (*Image, error) {
	if err := validate(width, height, mode); err != nil {
		return nil, err
	}
	im := &Image{Width: width, Height: height, Sampling: mode}
	for p := range im.Planes {
		w, h := im.PlaneSize(p)
		im.Planes[p] = make([]byte, w*h)
	}
	return im, nil
}

// PlaneSize returns the dimensions of plane p
func (im *Image) PlaneSize(p int) (int, int) {
	if p == 0 {
		return im.Width, im.Height
	}
	return im.Sampling.ChromaSize(im.Width, im.Height)
}

// Validate checks dimensions, sampling mode and plane lengths
func (im *Image) Validate() error {
	if err := validate(im.Width, im.Height, im.Sampling); err != nil {
		return err
	}
	for p, plane := range im.Planes {
		w, h := im.PlaneSize(p)
		if len(plane) < w*h {
			return fmt.Errorf("%w: plane %d has %d samples, want %dx%d", ErrPlaneSize, p, len(plane), w, h)
		}
	}
	return nil
}

func validate(width, height int, mode SamplingMode) error {
	if width <= 0 || height <= 0 || width > math.MaxUint16 || height > math.MaxUint16 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedSamplingMode, mode)
	}
	return nil
}
