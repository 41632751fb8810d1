package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jpfielding/mpegc.go/pkg/mpegc"
	"github.com/jpfielding/mpegc.go/pkg/util"
	"github.com/spf13/cobra"
)

// Section describes one coded plane
type Section struct {
	Plane  int    `json:"plane"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Blocks int    `json:"blocks"`
	Bytes  int    `json:"bytes"`
	MD5    string `json:"md5"`
}

// Report is what inspect prints
type Report struct {
	mpegc.Header
	Sections []Section `json:"sections"`
	Trailing int       `json:"trailing"`
}

// NewInspectCmd dumps the header and per plane section sizes of a container
func NewInspectCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "print container header and section info",
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath, _ := cmd.Flags().GetString("in")
			insecure, _ := cmd.Flags().GetBool("insecure")
			if inPath == "" && len(args) > 0 {
				inPath = args[0]
			}
			in, err := openInput(ctx, inPath, insecure)
			if err != nil {
				return err
			}
			defer in.Close()
			data, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			rep, err := inspect(data)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "text":
				fmt.Fprintf(w, "width: %d\nheight: %d\nquality: %d\nsampling: %s\n",
					rep.Width, rep.Height, rep.Quality, rep.Sampling)
				for _, s := range rep.Sections {
					fmt.Fprintf(w, "plane %d: %dx%d blocks=%d bytes=%d md5=%s\n",
						s.Plane, s.Width, s.Height, s.Blocks, s.Bytes, s.MD5)
				}
				if rep.Trailing > 0 {
					fmt.Fprintf(w, "trailing: %d\n", rep.Trailing)
				}
			default:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "input container path, url or - for stdin")
	pf.StringP("format", "f", "text", "output format (text|json)")
	pf.Bool("insecure", false, "skip tls verification for url inputs")
	return cmd
}

func inspect(data []byte) (*Report, error) {
	c, err := mpegc.ReadContainer(data)
	if err != nil {
		return nil, err
	}
	rep := &Report{Header: c.Header, Trailing: c.Trailing}
	counts := c.Header.BlockCounts()
	for p, sec := range c.Sections {
		w, h := c.Header.PlaneSize(p)
		rep.Sections = append(rep.Sections, Section{
			Plane:  p,
			Width:  w,
			Height: h,
			Blocks: counts[p],
			Bytes:  len(sec),
			MD5:    util.Md5ThenHex(sec),
		})
	}
	return rep, nil
}
