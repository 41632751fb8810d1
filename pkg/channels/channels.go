// Package channels converts between image.Image and the codec's
// level-shifted YCbCr planes. The codec itself does no color conversion,
// subsampling or level shifting; this is the host side of that contract.
package channels

import (
	"image"
	"image/color"

	"github.com/jpfielding/mpegc.go/pkg/mpegc"
	xdraw "golang.org/x/image/draw"
)

// Scaler resamples the chroma planes when subsampling
var Scaler xdraw.Scaler = xdraw.BiLinear

// Shift maps an unsigned sample to its signed, zero-centered cell
func Shift(v byte) byte {
	return v - 128
}

// Unshift is the inverse of Shift
func Unshift(v byte) byte {
	return v + 128
}

// Split converts img to YCbCr, subsamples chroma when mode asks for it and
// level-shifts every plane.
func Split(img image.Image, mode mpegc.SamplingMode) (*mpegc.Image, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	im, err := mpegc.NewImage(w, h, mode)
	if err != nil {
		return nil, err
	}

	full := image.NewYCbCr(image.Rect(0, 0, w, h), image.YCbCrSubsampleRatio444)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			yy, cb, cr := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			i := y*w + x
			full.Y[i] = yy
			full.Cb[i] = cb
			full.Cr[i] = cr
		}
	}

	shiftInto(im.Planes[0], full.Y)
	if mode == mpegc.SamplingFull {
		shiftInto(im.Planes[1], full.Cb)
		shiftInto(im.Planes[2], full.Cr)
		return im, nil
	}
	cw, ch := mode.ChromaSize(w, h)
	shiftInto(im.Planes[1], resample(full.Cb, w, h, cw, ch))
	shiftInto(im.Planes[2], resample(full.Cr, w, h, cw, ch))
	return im, nil
}

// Merge undoes the level shift, upsamples chroma and converts to RGBA
func Merge(im *mpegc.Image) (*image.RGBA, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, im.Width, im.Height)
	ratio := image.YCbCrSubsampleRatio444
	if im.Sampling == mpegc.SamplingSubsampled {
		ratio = image.YCbCrSubsampleRatio420
	}
	ycc := image.NewYCbCr(rect, ratio)
	unshiftInto(ycc.Y, im.Planes[0])
	unshiftInto(ycc.Cb, im.Planes[1])
	unshiftInto(ycc.Cr, im.Planes[2])

	dst := image.NewRGBA(rect)
	xdraw.Draw(dst, rect, ycc, image.Point{}, xdraw.Src)
	return dst, nil
}

// Gray returns the unshifted plane p as a grayscale image
func Gray(im *mpegc.Image, p int) *image.Gray {
	w, h := im.PlaneSize(p)
	g := image.NewGray(image.Rect(0, 0, w, h))
	unshiftInto(g.Pix, im.Planes[p])
	return g
}

func resample(plane []byte, w, h, dw, dh int) []byte {
	src := &image.Gray{Pix: plane, Stride: w, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewGray(image.Rect(0, 0, dw, dh))
	Scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst.Pix
}

func shiftInto(dst, src []byte) {
	for i := range dst {
		dst[i] = Shift(src[i])
	}
}

func unshiftInto(dst, src []byte) {
	for i := range dst {
		dst[i] = Unshift(src[i])
	}
}
