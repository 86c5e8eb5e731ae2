// Command lineshape matches, parses and follows log lines using declarative
// line formats.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lineshape",
	Short: "Match log lines against declarative formats",
	Long: `lineshape extracts typed fields from log lines.

A format is a sequence of quoted literals and field names:

  "<" priority ">" facility ": " message

Each field captures text up to the literal that follows it, or the rest of
the line when it comes last. Formats can be given on the command line or
collected in YAML pattern files.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log diagnostics to stderr")

	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newExplainCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTailCmd())
	rootCmd.AddCommand(completionCmd)
}

// newLogger returns a debug logger writing to w when --verbose is set, and a
// discarding logger otherwise.
func newLogger(w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
