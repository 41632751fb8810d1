package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jpfielding/mpegc.go/pkg/channels"
	"github.com/jpfielding/mpegc.go/pkg/mpegc"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
)

// NewDecodeCmd converts a container back into an image
func NewDecodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "decode a container to an image or raw planes",
		Long:  "decode a container to png/bmp/tiff/jpeg by output extension, or with --raw dump the unshifted Y, Cb and Cr planes back to back",
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath, _ := cmd.Flags().GetString("in")
			outPath, _ := cmd.Flags().GetString("out")
			raw, _ := cmd.Flags().GetBool("raw")
			compress, _ := cmd.Flags().GetBool("zstd")
			insecure, _ := cmd.Flags().GetBool("insecure")
			if inPath == "" && len(args) > 0 {
				inPath = args[0]
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
			im, err := mpegc.Decode(in, opts)
			if err != nil {
				return fmt.Errorf("decode %s: %w", inPath, err)
			}
			slog.InfoContext(ctx, "decoded",
				slog.Int("width", im.Width),
				slog.Int("height", im.Height),
				slog.String("sampling", im.Sampling.String()))

			if !raw {
				rgba, err := channels.Merge(im)
				if err != nil {
					return err
				}
				return writeImage(outPath, rgba)
			}
			return writeOutput(outPath, func(out io.Writer) error {
				return writeRaw(out, im, compress)
			})
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "input container path, url or - for stdin")
	pf.StringP("out", "o", "", "output path")
	pf.Bool("raw", false, "write raw planes instead of an image")
	pf.Bool("zstd", false, "zstd compress the raw planes")
	pf.Bool("insecure", false, "skip tls verification for url inputs")
	addCodecFlags(cmd)
	return cmd
}

// writeRaw writes every plane, unshifted, in Y Cb Cr order
func writeRaw(w io.Writer, im *mpegc.Image, compress bool) error {
	bw := bufio.NewWriter(w)
	var dst io.Writer = bw
	var enc *zstd.Encoder
	if compress {
		var err error
		if enc, err = zstd.NewWriter(bw); err != nil {
			return err
		}
		dst = enc
	}
	for p := range im.Planes {
		if _, err := dst.Write(channels.Gray(im, p).Pix); err != nil {
			return err
		}
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return bw.Flush()
}
