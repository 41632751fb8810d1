package cmd

import (
	"context"
	"crypto/tls"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp"
)

// openInput resolves a path, "-" for stdin, or an http(s) url
func openInput(ctx context.Context, uri string, insecure bool) (io.ReadCloser, error) {
	uri = strings.TrimPrefix(uri, "file://")
	switch {
	case uri == "":
		return nil, fmt.Errorf("input is required")
	case uri == "-":
		return io.NopCloser(os.Stdin), nil
	case strings.HasPrefix(uri, "http"):
		cl := http.DefaultClient
		if insecure {
			cl = &http.Client{
				Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}},
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := cl.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to download: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to download: %s", resp.Status)
		}
		return resp.Body, nil
	default:
		f, err := os.Open(uri)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return f, nil
	}
}

// createOutput opens path for writing, "-" or "" for stdout
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// writeOutput creates path and hands it to fn. A failed Close is reported
// when fn itself succeeded.
func writeOutput(path string, fn func(io.Writer) error) error {
	out, err := createOutput(path)
	if err != nil {
		return err
	}
	return writeTo(out, fn)
}

func writeTo(out io.WriteCloser, fn func(io.Writer) error) error {
	err := fn(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

// writeImage encodes img in the format named by the extension of path
func writeImage(path string, img image.Image) error {
	return writeOutput(path, func(out io.Writer) error {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".bmp":
			return bmp.Encode(out, img)
		case ".tif", ".tiff":
			return tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate})
		case ".jpg", ".jpeg":
			return jpeg.Encode(out, img, &jpeg.Options{Quality: 95})
		default:
			return png.Encode(out, img)
		}
	})
}
