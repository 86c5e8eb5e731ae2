package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/lineshape/lineshape-go/internal/builtin"
	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
	"github.com/lineshape/lineshape-go/pkg/lineshape/format"
)

type explainOptions struct {
	spec    string
	builtin string
	fields  []string
	dump    bool
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newExplainCmd() *cobra.Command {
	opts := &explainOptions{}
	cmd := &cobra.Command{
		Use:   "explain (--format SPEC [--field name:type]... | --builtin TYPE)",
		Short: "Show how a format is compiled",
		Long: `Show the sections a format compiles to. Without --field only the
grammar is checked; with --field the format is also bound to the declared
fields and their types are shown. --builtin shows one of the formats
recognized without a pattern file.

Examples:
  lineshape explain -F '"<" pri ">" facility ": " msg'
  lineshape explain --builtin syslog
  lineshape explain -F 'key "=" value' --field key --field value:int --dump`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.spec, "format", "F", "", "Format specification")
	cmd.Flags().StringVar(&opts.builtin, "builtin", "", "Built-in format to show (syslog, bracket)")
	cmd.Flags().StringArrayVar(&opts.fields, "field", nil, "Field declaration name[:type] (repeatable)")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "Dump the compiled structure")
	cmd.MarkFlagsOneRequired("format", "builtin")
	cmd.MarkFlagsMutuallyExclusive("format", "builtin")
	cmd.MarkFlagsMutuallyExclusive("field", "builtin")
	_ = cmd.RegisterFlagCompletionFunc("builtin", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ValidEventTypeNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExplain(out io.Writer, opts *explainOptions) error {
	if opts.builtin != "" {
		f, ok := builtin.Lookup(event.Type(opts.builtin))
		if !ok {
			return fmt.Errorf("unknown built-in format: %s (valid: %s)", opts.builtin, strings.Join(ValidEventTypeNames(), ", "))
		}
		return explainBound(out, f.Bound, opts.dump)
	}

	p, err := format.Parse(opts.spec)
	if err != nil {
		return err
	}
	if len(opts.fields) == 0 {
		return explainPattern(out, p, nil, p, opts.dump)
	}

	schema, err := parseSchema(opts.fields)
	if err != nil {
		return err
	}
	b, err := format.Bind(p, schema)
	if err != nil {
		return err
	}
	return explainBound(out, b, opts.dump)
}

func explainBound(out io.Writer, b *format.Bound, dump bool) error {
	types := make(map[string]string, len(b.Schema()))
	for _, f := range b.Schema() {
		types[f.Name] = f.Type.Name()
	}
	return explainPattern(out, b.Pattern(), types, b, dump)
}

// explainPattern prints the sections of p. compiled is what --dump shows.
func explainPattern(out io.Writer, p *format.Pattern, types map[string]string, compiled any, dump bool) error {
	fmt.Fprintf(out, "format: %s\n", p)
	fmt.Fprintf(out, "sections: %d\n", p.Len())
	for i, s := range p.Sections() {
		switch s.Kind {
		case format.LiteralMatch:
			fmt.Fprintf(out, "  %2d  %-13s  %q\n", i, s.Kind, s.Text)
		case format.LookaheadCapture:
			fmt.Fprintf(out, "  %2d  %-13s  %s until %q\n", i, s.Kind, typedName(s.Field, types), s.Text)
		default:
			fmt.Fprintf(out, "  %2d  %-13s  %s\n", i, s.Kind, typedName(s.Field, types))
		}
	}

	if dump {
		fmt.Fprintln(out)
		dumpConfig.Fdump(out, compiled)
	}
	return nil
}

func typedName(field string, types map[string]string) string {
	if t, ok := types[field]; ok {
		return field + ":" + t
	}
	return field
}
