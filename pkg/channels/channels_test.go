package channels

import (
	"image"
	"image/color"
	"testing"

	"github.com/jpfielding/mpegc.go/pkg/mpegc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestShift(t *testing.T) {
	assert.Equal(t, int8(0), int8(Shift(128)))
	assert.Equal(t, int8(-128), int8(Shift(0)))
	assert.Equal(t, int8(127), int8(Shift(255)))
	for v := 0; v < 256; v++ {
		assert.Equal(t, byte(v), Unshift(Shift(byte(v))))
	}
}

func TestSplit_Gray(t *testing.T) {
	im, err := Split(solid(5, 3, color.RGBA{128, 128, 128, 255}), mpegc.SamplingSubsampled)
	require.NoError(t, err)
	assert.Equal(t, 5, im.Width)
	assert.Equal(t, 3, im.Height)
	assert.Len(t, im.Planes[0], 15)
	assert.Len(t, im.Planes[1], 3*2)
	assert.Len(t, im.Planes[2], 3*2)
	for p := range im.Planes {
		for _, v := range im.Planes[p] {
			assert.Equal(t, byte(0), v, "plane %d", p)
		}
	}
}

func TestSplitMerge_Solid(t *testing.T) {
	colors := []color.RGBA{
		{200, 30, 60, 255},
		{10, 220, 90, 255},
		{0, 0, 0, 255},
		{255, 255, 255, 255},
	}
	for _, mode := range []mpegc.SamplingMode{mpegc.SamplingFull, mpegc.SamplingSubsampled} {
		for _, c := range colors {
			im, err := Split(solid(9, 7, c), mode)
			require.NoError(t, err)
			out, err := Merge(im)
			require.NoError(t, err)
			got := out.RGBAAt(8, 6)
			assert.LessOrEqual(t, absDiff(c.R, got.R), 3, "%v %v", mode, c)
			assert.LessOrEqual(t, absDiff(c.G, got.G), 3, "%v %v", mode, c)
			assert.LessOrEqual(t, absDiff(c.B, got.B), 3, "%v %v", mode, c)
		}
	}
}

func TestSplit_Offset(t *testing.T) {
	// a sub-image whose bounds do not start at the origin
	base := solid(20, 20, color.RGBA{0, 0, 0, 255})
	base.SetRGBA(10, 10, color.RGBA{255, 255, 255, 255})
	sub := base.SubImage(image.Rect(10, 10, 14, 14))

	im, err := Split(sub, mpegc.SamplingFull)
	require.NoError(t, err)
	assert.Equal(t, int8(127), int8(im.Planes[0][0]))
	assert.Equal(t, int8(-128), int8(im.Planes[0][1]))
}

func TestMerge_Invalid(t *testing.T) {
	_, err := Merge(&mpegc.Image{Width: 0, Height: 1})
	assert.ErrorIs(t, err, mpegc.ErrInvalidDimensions)
}

func TestGray(t *testing.T) {
	im, err := mpegc.NewImage(4, 4, mpegc.SamplingSubsampled)
	require.NoError(t, err)
	im.Planes[1][3] = Shift(77)
	g := Gray(im, 1)
	assert.Equal(t, image.Rect(0, 0, 2, 2), g.Bounds())
	assert.Equal(t, uint8(77), g.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(128), g.GrayAt(0, 0).Y)
}
