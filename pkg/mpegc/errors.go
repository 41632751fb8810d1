package mpegc

import (
	"errors"
	"fmt"

	"github.com/jpfielding/mpegc.go/pkg/compress/dct"
	"github.com/jpfielding/mpegc.go/pkg/compress/rle"
)

var (
	ErrInvalidDimensions       = dct.ErrInvalidDimensions
	ErrUnsupportedSamplingMode = errors.New("mpegc: unsupported sampling mode")
	ErrPlaneSize               = dct.ErrPlaneSize
	ErrTruncatedStream         = rle.ErrTruncatedStream
	ErrCorruptEscape           = rle.ErrCorruptEscape
	ErrShortHeader             = fmt.Errorf("%w: short header", rle.ErrTruncatedStream)
)
