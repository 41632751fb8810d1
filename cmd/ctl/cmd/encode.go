package cmd

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/jpfielding/mpegc.go/pkg/mpegc"
	"github.com/jpfielding/mpegc.go/pkg/pipeline"
	"github.com/spf13/cobra"
)

// NewEncodeCmd converts an image file into a container
func NewEncodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "encode an image (png, jpeg, bmp, tiff, webp) to a container",
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath, _ := cmd.Flags().GetString("in")
			outPath, _ := cmd.Flags().GetString("out")
			preview, _ := cmd.Flags().GetString("preview")
			sampling, _ := cmd.Flags().GetString("sampling")
			insecure, _ := cmd.Flags().GetBool("insecure")
			if inPath == "" && len(args) > 0 {
				inPath = args[0]
			}

			var mode mpegc.SamplingMode
			if err := mode.UnmarshalText([]byte(sampling)); err != nil {
				return err
			}
			opts, err := codecOptions(cmd)
			if err != nil {
				return err
			}

			in, err := openInput(ctx, inPath, insecure)
			if err != nil {
				return err
			}
			defer in.Close()
			img, format, err := image.Decode(in)
			if err != nil {
				return fmt.Errorf("decode %s: %w", inPath, err)
			}

			p, err := pipeline.New(img, mode, opts)
			if err != nil {
				return err
			}
			data, err := p.Bytes(ctx)
			if err != nil {
				return err
			}
			if err := writeOutput(outPath, func(out io.Writer) error {
				_, err := out.Write(data)
				return err
			}); err != nil {
				return err
			}
			b := img.Bounds()
			slog.InfoContext(ctx, "encoded",
				slog.String("format", format),
				slog.Int("width", b.Dx()),
				slog.Int("height", b.Dy()),
				slog.String("sampling", mode.String()),
				slog.Int("bytes", len(data)))

			if preview == "" {
				return nil
			}
			rgba, err := p.PreviewImage(ctx)
			if err != nil {
				return err
			}
			return writeImage(preview, rgba)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "input image path, url or - for stdin")
	pf.StringP("out", "o", "-", "output container path")
	pf.String("preview", "", "also write the decoded result to this image path")
	pf.StringP("sampling", "s", "420", "chroma sampling (444|420)")
	pf.Bool("insecure", false, "skip tls verification for url inputs")
	addCodecFlags(cmd)
	return cmd
}

func addCodecFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.Uint8("quality", mpegc.DefaultQuality, "value stored in the header quality byte")
	pf.Int("workers", 0, "goroutines per plane (0 uses every cpu)")
}

func codecOptions(cmd *cobra.Command) (*mpegc.Options, error) {
	opts := mpegc.DefaultOptions()
	q, err := cmd.Flags().GetUint8("quality")
	if err != nil {
		return nil, err
	}
	opts.Quality = q
	if w, _ := cmd.Flags().GetInt("workers"); w > 0 {
		opts.Workers = w
	}
	return opts, nil
}
