package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lineshape/lineshape-go/internal/safefile"
	"github.com/lineshape/lineshape-go/pkg/lineshape"
	"github.com/lineshape/lineshape-go/pkg/lineshape/format"
)

type matchOptions struct {
	spec   string
	fields []string
	output string
	strict bool
}

func newMatchCmd() *cobra.Command {
	opts := &matchOptions{}
	cmd := &cobra.Command{
		Use:   "match --format SPEC [--field name:type]... [FILE]",
		Short: "Match each input line against a format",
		Long: `Match each line of FILE (or stdin) against a format and print the
extracted fields.

Every field named in the format must be declared with --field, and every
declared field must appear in the format. Types default to string.

Examples:
  # Key/value pairs
  printf 'retries=3\n' | lineshape match -F 'key "=" value' --field key --field value:int

  # Timestamps with a custom layout
  lineshape match -F '"[" at "] " msg' --field 'at:time:2006-01-02 15:04:05' --field msg app.log

  # Stop at the first line that does not match
  lineshape match --strict -F '"<" pri ">" rest' --field pri:uint8 --field rest app.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.spec, "format", "F", "", "Format specification")
	cmd.Flags().StringArrayVar(&opts.fields, "field", nil, "Field declaration name[:type] (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "jsonl", "Output format: jsonl, pretty")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on the first line that does not match")
	_ = cmd.MarkFlagRequired("format")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"jsonl", "pretty"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runMatch(cmd *cobra.Command, opts *matchOptions, args []string) error {
	if err := checkFormat(opts.output); err != nil {
		return err
	}
	schema, err := parseSchema(opts.fields)
	if err != nil {
		return err
	}
	b, err := format.Compile(opts.spec, schema)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, _, err := safefile.OpenRegular(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	log := newLogger(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), lineshape.DefaultMaxLineBytes)

	lineNum, failed := 0, 0
	for sc.Scan() {
		lineNum++
		res, err := b.Match(strings.TrimSuffix(sc.Text(), "\r"))
		if err != nil {
			if opts.strict {
				return fmt.Errorf("line %d: %w", lineNum, err)
			}
			failed++
			fmt.Fprintf(stderr, "line %d: %v\n", lineNum, err)
			continue
		}
		if err := outputFields(opts.output, res, out); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("line %d: %w", lineNum+1, lineshape.ErrLineTooLong)
		}
		return err
	}

	log.Debug("match finished", "lines", lineNum, "failed", failed)
	return nil
}

func outputFields(output string, res *format.Result, out io.Writer) error {
	if output == "pretty" {
		_, err := fmt.Fprintln(out, formatData(res.Map()))
		return err
	}
	return OutputJSON(jsonFields(res.Map()), out)
}
