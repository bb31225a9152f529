package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var Eval = &cobra.Command{
	Use:   "eval <expr>...",
	Short: "Evaluates a prefix expression over + - * / and ^.",
	Long: "Evaluates a prefix expression over + - * / and ^.\n" +
		"All arguments are joined with spaces, so 'eval + 1 2' and \"eval '+ 1 2'\" are equivalent.\n" +
		"Division and negative powers are rounded half up to --precision digits after the decimal point.",
	Example: "bigcalc eval '* 10 + 1.23 4.56'\nbigcalc eval --precision 5 / 1 3",
	Args:    cobra.MinimumNArgs(1),
	RunE:    commandEval,
}

func commandEval(cmd *cobra.Command, args []string) error {
	expr := strings.Join(args, " ")
	d, err := evaluator.Eval(expr)
	if err != nil {
		return fmt.Errorf("failed to evaluate %q: %w", expr, err)
	}
	return writeRecords(cmd.OutOrStdout(), cfg.Output, record{Expr: expr, Result: d})
}

func init() {
	Root.AddCommand(Eval)
}
