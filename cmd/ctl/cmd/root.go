package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/mpegc.go/pkg/logging"
	"github.com/spf13/cobra"
)

// logSink owns the optional log file so it can be closed however the
// command ends
type logSink struct {
	open func(path string) io.WriteCloser
	w    io.WriteCloser
}

func newLogSink() *logSink {
	return &logSink{open: func(path string) io.WriteCloser {
		return logging.RotatingFile(path, 10)
	}}
}

func (s *logSink) Open(path string) io.Writer {
	s.Close()
	s.w = s.open(path)
	return s.w
}

func (s *logSink) Close() error {
	if s.w == nil {
		return nil
	}
	err := s.w.Close()
	s.w = nil
	return err
}

// Execute builds the command tree, runs it and closes the log file
func Execute(ctx context.Context, gitsha string) error {
	sink := newLogSink()
	return run(newRoot(ctx, gitsha, sink), sink)
}

func run(root *cobra.Command, sink *logSink) error {
	defer sink.Close()
	return root.Execute()
}

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	return newRoot(ctx, gitsha, newLogSink())
}

func newRoot(ctx context.Context, gitsha string, sink *logSink) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mpegctl",
		Short: "encode, decode and inspect block transform images",
		Long:  "mpegctl converts ordinary images to and from the block transform container and dumps container metadata",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logPath, _ := cmd.Flags().GetString("log-file")
			logJSON, _ := cmd.Flags().GetBool("log-json")

			var level slog.Level
			levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if levelErr != nil {
				level = slog.LevelInfo
			}
			var w io.Writer = os.Stderr
			if logPath != "" {
				w = io.MultiWriter(os.Stderr, sink.Open(logPath))
			}
			slog.SetDefault(logging.Logger(w, logJSON, level))
			if levelErr != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", levelErr)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			sink.Close()
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewEncodeCmd(ctx),
		NewDecodeCmd(ctx),
		NewInspectCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "also write logs to this rotating file")
	pf.Bool("log-json", false, "log as JSON")
	return cmd
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Println(strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
