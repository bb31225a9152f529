// Package calc evaluates arithmetic expressions over decimals written in
// prefix (Polish) notation, such as "* 10 + 1.23 4.56".
//
// Supported operators are +, -, *, / and ^. The right operand of ^ must be
// an integer. Division and negative powers keep the precision the
// [Evaluator] was created with.
package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/govalues/bigdecimal"
	"github.com/govalues/bigdecimal/internal/metrics"
)

// DefaultMaxExponent bounds the magnitude of exponents accepted by ^.
const DefaultMaxExponent = 10000

var (
	// ErrNoTokens is returned for an empty expression.
	ErrNoTokens = errors.New("no tokens")
	// ErrMissingOperands is returned when an operator has fewer than two operands.
	ErrMissingOperands = errors.New("not enough operands")
	// ErrExtraOperands is returned when operands remain after evaluation.
	ErrExtraOperands = errors.New("too many operands")
	// ErrInvalidExponent is returned when the exponent is not an integer
	// or exceeds the configured maximum.
	ErrInvalidExponent = errors.New("invalid exponent")
)

// Evaluator evaluates prefix expressions.
// It is safe for concurrent use by multiple goroutines.
type Evaluator struct {
	prec    int
	maxExp  int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithLogger sets the logger used to trace every reduction at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics the evaluator records into.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// WithMaxExponent sets the largest exponent magnitude accepted by ^.
func WithMaxExponent(n int) Option {
	return func(e *Evaluator) {
		e.maxExp = n
	}
}

// New returns an evaluator that rounds quotients to prec digits after
// the decimal point.
func New(prec int, opts ...Option) (*Evaluator, error) {
	if prec < 0 {
		return nil, fmt.Errorf("creating evaluator with precision %v: %w", prec, bigdecimal.ErrPrecisionRange)
	}
	e := &Evaluator{
		prec:   prec,
		maxExp: DefaultMaxExponent,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Precision returns the number of digits after the decimal point kept by
// division and negative powers.
func (e *Evaluator) Precision() int {
	return e.prec
}

// Eval evaluates a single expression.
func (e *Evaluator) Eval(expr string) (bigdecimal.Decimal, error) {
	start := time.Now()

	tokens := strings.Fields(expr)
	if len(tokens) == 0 {
		return bigdecimal.Decimal{}, fmt.Errorf("parsing tokens: %w", ErrNoTokens)
	}
	stack, err := e.processTokens(tokens)
	if err != nil {
		return bigdecimal.Decimal{}, fmt.Errorf("processing tokens: %w", err)
	}
	if len(stack) != 1 {
		return bigdecimal.Decimal{}, fmt.Errorf("post-processed stack contains %v: %w", stack, ErrExtraOperands)
	}

	e.metrics.ObserveExpression(time.Since(start).Seconds())
	e.logger.Debug("evaluated expression", "expr", expr, "result", stack[0].String())
	return stack[0], nil
}

// EvalAll evaluates exprs with at most jobs expressions in flight and
// returns the results in the order of exprs.
// A non-positive jobs means no limit.
// The first failure cancels the remaining evaluations.
func (e *Evaluator) EvalAll(ctx context.Context, exprs []string, jobs int) ([]bigdecimal.Decimal, error) {
	results := make([]bigdecimal.Decimal, len(exprs))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, expr := range exprs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := e.Eval(expr)
			if err != nil {
				return fmt.Errorf("expression %d %q: %w", i+1, expr, err)
			}
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Evaluator) processTokens(tokens []string) ([]bigdecimal.Decimal, error) {
	stack := make([]bigdecimal.Decimal, 0, len(tokens))
	var err error
	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		switch token {
		case "+", "-", "*", "/", "^":
			stack, err = e.processOperator(stack, token)
		default:
			stack, err = processOperand(stack, token)
		}
		if err != nil {
			return nil, fmt.Errorf("processing token %q: %w", token, err)
		}
	}
	return stack, nil
}

func (e *Evaluator) processOperator(stack []bigdecimal.Decimal, token string) ([]bigdecimal.Decimal, error) {
	if len(stack) < 2 {
		return nil, ErrMissingOperands
	}
	right := stack[len(stack)-2]
	left := stack[len(stack)-1]
	stack = stack[:len(stack)-2]

	result, err := e.apply(token, left, right)
	if err != nil {
		e.metrics.ObserveError(token)
		return nil, fmt.Errorf("evaluating \"%s %s %s\": %w", left, token, right, err)
	}

	e.metrics.ObserveOperation(token, result.Prec())
	e.logger.Debug("applied operator",
		"op", token,
		"left", left.String(),
		"right", right.String(),
		"result", result.String())
	return append(stack, result), nil
}

func (e *Evaluator) apply(token string, left, right bigdecimal.Decimal) (bigdecimal.Decimal, error) {
	switch token {
	case "+":
		return left.Add(right), nil
	case "-":
		return left.Sub(right), nil
	case "*":
		return left.Mul(right), nil
	case "/":
		return left.QuoPrec(right, e.prec)
	case "^":
		exp, err := e.exponent(right)
		if err != nil {
			return bigdecimal.Decimal{}, err
		}
		return left.PowPrec(exp, e.prec)
	}
	return bigdecimal.Decimal{}, fmt.Errorf("unknown operator %q", token)
}

// exponent converts d to an int exponent within the configured bounds.
func (e *Evaluator) exponent(d bigdecimal.Decimal) (int, error) {
	if !d.IsInt() {
		return 0, fmt.Errorf("%v is not an integer: %w", d, ErrInvalidExponent)
	}
	n, ok := d.Int64()
	if !ok || n > int64(e.maxExp) || n < -int64(e.maxExp) {
		return 0, fmt.Errorf("%v is outside [%v, %v]: %w", d, -e.maxExp, e.maxExp, ErrInvalidExponent)
	}
	return int(n), nil
}

func processOperand(stack []bigdecimal.Decimal, token string) ([]bigdecimal.Decimal, error) {
	d, err := bigdecimal.Parse(token)
	if err != nil {
		return nil, err
	}
	return append(stack, d), nil
}

// Pow parses base and raises it to the integer power exp.
func (e *Evaluator) Pow(base, exp string) (bigdecimal.Decimal, error) {
	stack, err := processOperand(nil, exp)
	if err != nil {
		return bigdecimal.Decimal{}, fmt.Errorf("parsing exponent: %w", err)
	}
	stack, err = processOperand(stack, base)
	if err != nil {
		return bigdecimal.Decimal{}, fmt.Errorf("parsing base: %w", err)
	}
	stack, err = e.processOperator(stack, "^")
	if err != nil {
		return bigdecimal.Decimal{}, err
	}
	return stack[0], nil
}

// Compare parses a and b and returns the result of a.Cmp(b).
func Compare(a, b string) (int, error) {
	d, err := bigdecimal.Parse(a)
	if err != nil {
		return 0, err
	}
	f, err := bigdecimal.Parse(b)
	if err != nil {
		return 0, err
	}
	return d.Cmp(f), nil
}
