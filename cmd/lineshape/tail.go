package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lineshape/lineshape-go/pkg/lineshape"
)

type tailOptions struct {
	patterns     []string
	file         string
	dir          string
	glob         string
	types        []string
	exclude      []string
	output       string
	includeRaw   bool
	fromStart    bool
	pollInterval time.Duration
}

func newTailCmd() *cobra.Command {
	opts := &tailOptions{}
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow a log file and output events",
		Long: `Follow a log file in real time and output parsed events.

With --dir the newest file matching --glob is followed, switching to a newer
file when one appears. Without --file or --dir, $LINESHAPE_DIR is used.

Events are output as JSON Lines by default, which makes it easy to process
them with tools like jq.

Examples:
  lineshape tail --file /var/log/app.log
  lineshape tail --dir /var/log/myapp --glob 'app-*.log' --patterns patterns.yaml
  lineshape tail --dir /var/log/myapp --types syslog -o pretty
  lineshape tail --file app.log | jq 'select(.type == "bracket")'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTail(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.patterns, "patterns", "p", nil, "YAML pattern file (repeatable)")
	cmd.Flags().StringVar(&opts.file, "file", "", "Log file to follow")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Directory whose newest log file is followed")
	cmd.Flags().StringVar(&opts.glob, "glob", lineshape.DefaultGlob, "File name pattern used with --dir")
	cmd.Flags().StringSliceVarP(&opts.types, "types", "t", nil, "Event types to show (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude-types", nil, "Event types to hide (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "jsonl", "Output format: jsonl, pretty")
	cmd.Flags().BoolVar(&opts.includeRaw, "raw", false, "Include raw log lines in output")
	cmd.Flags().BoolVar(&opts.fromStart, "from-start", false, "Read the file from the beginning")
	cmd.Flags().DurationVar(&opts.pollInterval, "poll-interval", 2*time.Second, "How often to check for a newer file")
	cmd.MarkFlagsMutuallyExclusive("file", "dir")
	registerTypeCompletion(cmd, "types", "exclude-types")

	return cmd
}

func runTail(cmd *cobra.Command, opts *tailOptions) error {
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

	watchOpts := []lineshape.WatchOption{
		lineshape.WithGlob(opts.glob),
		lineshape.WithPollInterval(opts.pollInterval),
		lineshape.WithFromStart(opts.fromStart),
		lineshape.WithIncludeRawLine(opts.includeRaw),
		lineshape.WithParser(parser),
		lineshape.WithFilter(eventTypes(opts.types), eventTypes(opts.exclude)),
		lineshape.WithLogger(log),
	}
	if opts.file != "" {
		watchOpts = append(watchOpts, lineshape.WithFile(opts.file))
	} else {
		watchOpts = append(watchOpts, lineshape.WithDir(opts.dir))
	}

	watcher, err := lineshape.NewWatcher(watchOpts...)
	if err != nil {
		return err
	}
	defer watcher.Close()

	events, errs, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var lastErr error
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return drainErrors(ctx, errs, lastErr, log)
			}
			if err := OutputEvent(opts.output, ev, out); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if isFatal(err) {
				return err
			}
			log.Warn("watch error", "error", err)
			lastErr = err

		case <-ctx.Done():
			return nil
		}
	}
}

// isFatal reports whether err ended the watch: no file to follow could be
// found.
func isFatal(err error) bool {
	var werr *lineshape.WatchError
	return errors.As(err, &werr) && werr.Op == lineshape.WatchOpFindLatest
}

// drainErrors reports errors still buffered after the event channel closed.
// The watcher only stops on its own after an error it could not recover
// from, so unless ctx was cancelled the last error seen is returned.
func drainErrors(ctx context.Context, errs <-chan error, lastErr error, log *slog.Logger) error {
	if errs != nil {
		for err := range errs {
			if isFatal(err) {
				return err
			}
			log.Warn("watch error", "error", err)
			lastErr = err
		}
	}
	if ctx.Err() != nil {
		return nil
	}
	return lastErr
}
