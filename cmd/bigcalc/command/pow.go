package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var Pow = &cobra.Command{
	Use:   "pow <base> <exp>",
	Short: "Raises a decimal to an integer power.",
	Long: "Raises a decimal to an integer power.\n" +
		"Positive powers are exact, negative powers are rounded half up to --precision digits after the decimal point.",
	Example: "bigcalc pow 1.05 10\nbigcalc pow -- 2 -3",
	Args:    cobra.ExactArgs(2),
	RunE:    commandPow,
}

func commandPow(cmd *cobra.Command, args []string) error {
	base, exp := cmd.Flags().Arg(0), cmd.Flags().Arg(1)
	d, err := evaluator.Pow(base, exp)
	if err != nil {
		return fmt.Errorf("failed to compute %v^%v: %w", base, exp, err)
	}
	return writeRecords(cmd.OutOrStdout(), cfg.Output, record{Expr: "^ " + base + " " + exp, Result: d})
}

func init() {
	Root.AddCommand(Pow)
}
