// Package pipeline wires the codec stages into a dataflow graph the way the
// node editor chains them: source image, channel split, forward transform,
// container write, and a decode branch that feeds a live preview.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"

	"github.com/jpfielding/mpegc.go/pkg/channels"
	"github.com/jpfielding/mpegc.go/pkg/graph"
	"github.com/jpfielding/mpegc.go/pkg/mpegc"
)

// Pipeline holds the node ids of one encode/preview chain
type Pipeline struct {
	g *graph.Graph

	Source  string // image.Image
	Mode    string // mpegc.SamplingMode
	Split   string // *mpegc.Image
	Forward string // *mpegc.Coefficients
	Encoded string // []byte container
	Decoded string // *mpegc.Image
	Preview string // *image.RGBA
	Inverse string // *mpegc.Image straight from coefficients
}

// ErrNoImage is returned when the source has not been set
var ErrNoImage = errors.New("pipeline: no source image")

// New builds the chain. img may be nil and set later with SetImage.
func New(img image.Image, mode mpegc.SamplingMode, opts *mpegc.Options) (*Pipeline, error) {
	if opts == nil {
		opts = mpegc.DefaultOptions()
	}
	g := graph.New()
	p := &Pipeline{g: g}
	p.Source = g.AddSource("source", img)
	p.Mode = g.AddSource("sampling", mode)

	var err error
	if p.Split, err = g.AddFunc("split", func(ctx context.Context, in []any) (any, error) {
		img, ok := in[0].(image.Image)
		if !ok || img == nil {
			return nil, ErrNoImage
		}
		return channels.Split(img, in[1].(mpegc.SamplingMode))
	}, p.Source, p.Mode); err != nil {
		return nil, err
	}
	if p.Forward, err = g.AddFunc("dct", func(ctx context.Context, in []any) (any, error) {
		return mpegc.Forward(in[0].(*mpegc.Image), opts)
	}, p.Split); err != nil {
		return nil, err
	}
	if p.Inverse, err = g.AddFunc("idct", func(ctx context.Context, in []any) (any, error) {
		return mpegc.Inverse(in[0].(*mpegc.Coefficients), opts)
	}, p.Forward); err != nil {
		return nil, err
	}
	if p.Encoded, err = g.AddFunc("write", func(ctx context.Context, in []any) (any, error) {
		c := in[0].(*mpegc.Coefficients)
		h := mpegc.Header{
			Width:    uint16(c.Width),
			Height:   uint16(c.Height),
			Quality:  opts.Quality,
			Sampling: c.Sampling,
		}
		var buf bytes.Buffer
		if _, err := mpegc.WriteContainer(&buf, h, c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}, p.Forward); err != nil {
		return nil, err
	}
	if p.Decoded, err = g.AddFunc("read", func(ctx context.Context, in []any) (any, error) {
		return mpegc.DecodeBytes(in[0].([]byte), opts)
	}, p.Encoded); err != nil {
		return nil, err
	}
	if p.Preview, err = g.AddFunc("preview", func(ctx context.Context, in []any) (any, error) {
		return channels.Merge(in[0].(*mpegc.Image))
	}, p.Decoded); err != nil {
		return nil, err
	}
	return p, nil
}

// Graph exposes the underlying graph
func (p *Pipeline) Graph() *graph.Graph {
	return p.g
}

// SetImage replaces the source image
func (p *Pipeline) SetImage(img image.Image) error {
	return p.g.Set(p.Source, img)
}

// SetSampling replaces the sampling mode
func (p *Pipeline) SetSampling(mode mpegc.SamplingMode) error {
	return p.g.Set(p.Mode, mode)
}

// Bytes returns the encoded container
func (p *Pipeline) Bytes(ctx context.Context) ([]byte, error) {
	v, err := p.g.Pull(ctx, p.Encoded)
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Planes returns the split, level-shifted input planes
func (p *Pipeline) Planes(ctx context.Context) (*mpegc.Image, error) {
	v, err := p.g.Pull(ctx, p.Split)
	if err != nil {
		return nil, err
	}
	return v.(*mpegc.Image), nil
}

// Reconstructed returns the planes decoded back from the container
func (p *Pipeline) Reconstructed(ctx context.Context) (*mpegc.Image, error) {
	v, err := p.g.Pull(ctx, p.Decoded)
	if err != nil {
		return nil, err
	}
	return v.(*mpegc.Image), nil
}

// Dequantized returns the inverse transform of the coefficients without
// passing through the container
func (p *Pipeline) Dequantized(ctx context.Context) (*mpegc.Image, error) {
	v, err := p.g.Pull(ctx, p.Inverse)
	if err != nil {
		return nil, err
	}
	return v.(*mpegc.Image), nil
}

// PreviewImage returns the decoded image as RGBA
func (p *Pipeline) PreviewImage(ctx context.Context) (*image.RGBA, error) {
	v, err := p.g.Pull(ctx, p.Preview)
	if err != nil {
		return nil, err
	}
	return v.(*image.RGBA), nil
}
