package command

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var Batch = &cobra.Command{
	Use:   "batch [file]",
	Short: "Evaluates one prefix expression per line.",
	Long: "Evaluates one prefix expression per line of file, or of standard input if file is omitted or '-'.\n" +
		"Blank lines and lines starting with # are skipped.\n" +
		"Up to --jobs expressions are evaluated concurrently and results are printed in input order.",
	Args: cobra.MaximumNArgs(1),
	RunE: commandBatch,
}

func commandBatch(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if name := cmd.Flags().Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("failed to open %v: %w", name, err)
		}
		defer f.Close()
		r = f
	}

	exprs, err := readExpressions(r)
	if err != nil {
		return fmt.Errorf("failed to read expressions: %w", err)
	}
	log.Info("evaluating batch", "expressions", len(exprs), "jobs", cfg.Jobs)

	results, err := evaluator.EvalAll(cmd.Context(), exprs, cfg.Jobs)
	if err != nil {
		return fmt.Errorf("failed to evaluate batch: %w", err)
	}

	recs := make([]record, len(exprs))
	for i := range exprs {
		recs[i] = record{Expr: exprs[i], Result: results[i]}
	}
	return writeRecords(cmd.OutOrStdout(), cfg.Output, recs...)
}

func readExpressions(r io.Reader) ([]string, error) {
	var exprs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	return exprs, scanner.Err()
}

func init() {
	Root.AddCommand(Batch)
}
