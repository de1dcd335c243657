package command

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlkit"
)

// AddDialectsCommand adds the dialects command.
func AddDialectsCommand(root *cobra.Command, sc *SqlkitCommand) {
	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List supported dialects and their sequence capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := sc.cfg.capabilities()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DIALECT\tSEQUENCES\tIF NOT EXISTS\tCACHE\tBOOLEAN PREDICATE\tQUOTE")
			for _, d := range sqlkit.Dialects() {
				c := table[d]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					d, yesNo(c.Sequences), yesNo(c.IfNotExists), yesNo(c.SequenceCache),
					yesNo(c.BooleanPredicate), c.Quote)
			}
			return w.Flush()
		},
	}
	root.AddCommand(cmd)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
