package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govalues/bigdecimal/internal/calc"
)

var Cmp = &cobra.Command{
	Use:   "cmp <a> <b>",
	Short: "Compares two decimals and prints <, = or >.",
	Args:  cobra.ExactArgs(2),
	RunE:  commandCmp,
}

func commandCmp(cmd *cobra.Command, args []string) error {
	a, b := cmd.Flags().Arg(0), cmd.Flags().Arg(1)
	c, err := calc.Compare(a, b)
	if err != nil {
		return fmt.Errorf("failed to compare %q and %q: %w", a, b, err)
	}
	log.Debug("compared", "a", a, "b", b, "result", c)
	return writeRecords(cmd.OutOrStdout(), cfg.Output, record{Expr: a + " " + b, Result: ordering(c)})
}

func init() {
	Root.AddCommand(Cmp)
}
