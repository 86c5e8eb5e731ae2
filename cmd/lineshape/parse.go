package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lineshape/lineshape-go/pkg/lineshape"
)

type parseOptions struct {
	patterns    []string
	types       []string
	exclude     []string
	output      string
	includeRaw  bool
	stopOnError bool
}

func newParseCmd() *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [--patterns FILE]... FILE...",
		Short: "Parse log files into events",
		Long: `Parse whole log files and print one event per recognized line.

The built-in formats (syslog, bracket) are always active. Pattern files add
their formats; a line matching several formats yields several events.

Examples:
  lineshape parse app.log
  lineshape parse --patterns patterns.yaml --types access app.log old.log
  lineshape parse -o pretty --raw app.log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.patterns, "patterns", "p", nil, "YAML pattern file (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.types, "types", "t", nil, "Event types to show (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude-types", nil, "Event types to hide (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "jsonl", "Output format: jsonl, pretty")
	cmd.Flags().BoolVar(&opts.includeRaw, "raw", false, "Include raw log lines in output")
	cmd.Flags().BoolVar(&opts.stopOnError, "stop-on-error", false, "Stop at the first parser error")
	registerTypeCompletion(cmd, "types", "exclude-types")

	return cmd
}

func runParse(cmd *cobra.Command, opts *parseOptions, args []string) error {
	if err := checkFormat(opts.output); err != nil {
		return err
	}
	parser, err := buildParser(opts.patterns)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := newLogger(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	for _, path := range args {
		events, err := lineshape.ParseFile(ctx, path,
			lineshape.WithParseParser(parser),
			lineshape.WithParseFilter(eventTypes(opts.types), eventTypes(opts.exclude)),
			lineshape.WithParseIncludeRawLine(opts.includeRaw),
			lineshape.WithParseStopOnError(opts.stopOnError),
			lineshape.WithParseLogger(log),
		)
		// Events before an error are still printed.
		for _, ev := range events {
			if err := OutputEvent(opts.output, ev, out); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Debug("parsed file", "path", path, "events", len(events))
	}
	return nil
}

// cmdContext returns the command's context, or Background when the command
// was executed without one.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func registerTypeCompletion(cmd *cobra.Command, flags ...string) {
	for _, name := range flags {
		_ = cmd.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return ValidEventTypeNames(), cobra.ShellCompDirectiveNoFileComp
		})
	}
}
