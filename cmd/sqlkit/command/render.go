package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlkit"
)

// AddRenderCommand adds the render command and its subcommands.
func AddRenderCommand(root *cobra.Command, sc *SqlkitCommand) {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render statements for the configured dialect",
	}
	cmd.AddCommand(newRenderSequenceCommand(sc))
	root.AddCommand(cmd)
}

// sequenceFlags pairs each valued clause flag with its builder setters.
var sequenceFlags = []struct {
	name   string
	usage  string
	set    func(*sqlkit.Builder, any) *sqlkit.Builder
	negate func(*sqlkit.Builder) *sqlkit.Builder
}{
	{"start-with", "First value", (*sqlkit.Builder).StartWith, nil},
	{"increment-by", "Step between values", (*sqlkit.Builder).IncrementBy, nil},
	{"min-value", "Lower bound", (*sqlkit.Builder).MinValue, (*sqlkit.Builder).NoMinValue},
	{"max-value", "Upper bound", (*sqlkit.Builder).MaxValue, (*sqlkit.Builder).NoMaxValue},
	{"cache", "Number of preallocated values", (*sqlkit.Builder).Cache, (*sqlkit.Builder).NoCache},
}

func newRenderSequenceCommand(sc *SqlkitCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence [name]",
		Short: "Render a CREATE SEQUENCE statement",
		Long: `Render a CREATE SEQUENCE statement for the configured dialect.

The statement is described either by flags or by a YAML/JSON file:

  sqlkit render sequence public.order_id --if-not-exists --start-with 1000
  sqlkit render sequence --file order_id.yaml --dialect derby

When --if-not-exists is requested for a dialect without native support, the
unconditional statement is printed and the guard is reported; execute such
statements with the guard package.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.runRenderSequence(cmd, args)
		},
	}

	cmd.Flags().String("file", "", "YAML or JSON sequence definition")
	cmd.Flags().Bool("if-not-exists", false, "Create only if the sequence does not exist")
	for _, f := range sequenceFlags {
		cmd.Flags().String(f.name, "", f.usage)
		if f.negate != nil {
			cmd.Flags().Bool("no-"+f.name, false, "Use the dialect default for "+f.name)
		}
	}
	cmd.Flags().Bool("cycle", false, "Wrap around when a bound is reached")
	cmd.Flags().Bool("no-cycle", false, "Fail when a bound is reached")
	cmd.Flags().String("output", "text", "Output format: text or json")

	cmd.MarkFlagsMutuallyExclusive("cycle", "no-cycle")
	for _, f := range sequenceFlags {
		if f.negate != nil {
			cmd.MarkFlagsMutuallyExclusive(f.name, "no-"+f.name)
		}
	}
	return cmd
}

func (sc *SqlkitCommand) runRenderSequence(cmd *cobra.Command, args []string) error {
	b, err := sequenceBuilder(cmd, args)
	if err != nil {
		return err
	}
	r, err := sc.renderer()
	if err != nil {
		return err
	}
	result, err := b.Render(r)
	if err != nil {
		return err
	}
	if result.Guard != nil {
		sc.logger.Info("dialect has no IF NOT EXISTS; statement requires a guard",
			"dialect", result.Dialect,
			"suppress", result.Guard.Suppress,
		)
	}

	output, _ := cmd.Flags().GetString("output")
	return writeQueryResult(cmd, output, result)
}

func sequenceBuilder(cmd *cobra.Command, args []string) (*sqlkit.Builder, error) {
	flags := cmd.Flags()
	file, _ := flags.GetString("file")

	var b *sqlkit.Builder
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read sequence file: %w", err)
		}
		schema, err := sqlkit.ParseSequenceSchema(data)
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			schema.Name = args[0]
		}
		b = schema.Builder()
	case len(args) == 1:
		b = sqlkit.CreateSequence(args[0])
	default:
		return nil, fmt.Errorf("a sequence name or --file is required")
	}

	if ok, _ := flags.GetBool("if-not-exists"); ok {
		b.IfNotExists()
	}
	for _, f := range sequenceFlags {
		if flags.Changed(f.name) {
			v, _ := flags.GetString(f.name)
			f.set(b, v)
		}
		if f.negate != nil {
			if ok, _ := flags.GetBool("no-" + f.name); ok {
				f.negate(b)
			}
		}
	}
	if ok, _ := flags.GetBool("cycle"); ok {
		b.Cycle()
	}
	if ok, _ := flags.GetBool("no-cycle"); ok {
		b.NoCycle()
	}
	return b, nil
}

type queryResultJSON struct {
	SQL     string        `json:"sql"`
	Dialect string        `json:"dialect"`
	Guard   *sqlkit.Guard `json:"guard,omitempty"`
}

func writeQueryResult(cmd *cobra.Command, output string, result *sqlkit.QueryResult) error {
	switch output {
	case "text":
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result.SQL)
		return err
	case "json":
		data, err := json.MarshalIndent(queryResultJSON{
			SQL:     result.SQL,
			Dialect: string(result.Dialect),
			Guard:   result.Guard,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result to JSON: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	default:
		return fmt.Errorf("invalid output format %q", output)
	}
}
