package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/govalues/bigdecimal"
)

// execute runs the root command with args and returns what it wrote to
// standard output and standard error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	Root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})

	var stdout, stderr bytes.Buffer
	Root.SetArgs(args)
	Root.SetIn(strings.NewReader(stdin))
	Root.SetOut(&stdout)
	Root.SetErr(&stderr)
	err := Root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single argument", []string{"eval", "* 10 + 1.23 4.56"}, "57.9\n"},
		{"many arguments", []string{"eval", "*", "10", "+", "1.23", "4.56"}, "57.9\n"},
		{"subtraction", []string{"eval", "-", "53643.368359", "24872398247.24982"}, "-24872344603.881461\n"},
		{"default precision", []string{"eval", "/ 1 3"}, "0.33333333333333333333\n"},
		{"precision flag", []string{"eval", "--precision", "5", "/ 1 3"}, "0.33333\n"},
		{"power", []string{"eval", "^ 2 100"}, "1267650600228229401496703205376\n"},
		{"negative operand", []string{"eval", "--", "* -2 -0.5"}, "1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestEval_Output(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		stdout, _, err := execute(t, "", "eval", "--output", "json", "+ 1 2")
		require.NoError(t, err)
		assert.JSONEq(t, `{"expr":"+ 1 2","result":"3"}`, stdout)
	})

	t.Run("yaml", func(t *testing.T) {
		stdout, _, err := execute(t, "", "eval", "--output=yaml", "/ 1 8")
		require.NoError(t, err)

		var got struct {
			Expr   string             `yaml:"expr"`
			Result bigdecimal.Decimal `yaml:"result"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, "/ 1 8", got.Expr)
		assert.Equal(t, bigdecimal.MustParse("0.125"), got.Result)
	})
}

func TestEval_Errors(t *testing.T) {
	tests := map[string]struct {
		args []string
		want error
	}{
		"division by zero": {[]string{"eval", "/ 1 0"}, bigdecimal.ErrDivisionByZero},
		"undefined power":  {[]string{"eval", "^ 0 -1"}, bigdecimal.ErrUndefinedPower},
		"invalid operand":  {[]string{"eval", "+ 1 1e3"}, bigdecimal.ErrInvalidDecimal},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, stderr, err := execute(t, "", tt.args...)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, stderr, "Error: failed to evaluate")
		})
	}

	t.Run("no arguments", func(t *testing.T) {
		_, _, err := execute(t, "", "eval")
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, _, err := execute(t, "", "eval", "--log-format", "xml", "1")
		assert.ErrorContains(t, err, "failed to load config")
	})
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"1", "2", "<\n"},
		{"2.0", "2", "=\n"},
		{"-1", "-2", ">\n"},
		{"0.1", "0.09999999999999999999999", ">\n"},
	}
	for _, tt := range tests {
		stdout, _, err := execute(t, "", "cmp", "--", tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, stdout, "cmp %v %v", tt.a, tt.b)
	}

	stdout, _, err := execute(t, "", "cmp", "--output", "json", "3", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"expr":"3 1","result":">"}`, stdout)

	_, _, err = execute(t, "", "cmp", "1", "x")
	assert.ErrorIs(t, err, bigdecimal.ErrInvalidDecimal)

	_, _, err = execute(t, "", "cmp", "1")
	assert.Error(t, err)
}

func TestPow(t *testing.T) {
	stdout, _, err := execute(t, "", "pow", "1.05", "10")
	require.NoError(t, err)
	assert.Equal(t, "1.62889462677744140625\n", stdout)

	stdout, _, err = execute(t, "", "pow", "--precision", "5", "--", "3", "-5")
	require.NoError(t, err)
	assert.Equal(t, "0.00412\n", stdout)

	_, _, err = execute(t, "", "pow", "2", "0.5")
	assert.ErrorContains(t, err, "invalid exponent")

	_, _, err = execute(t, "", "pow", "--max-exponent", "10", "2", "11")
	assert.ErrorContains(t, err, "invalid exponent")
}

func TestBatch(t *testing.T) {
	input := "# totals\n+ 1 1\n\n/ 1 3\n  ^ 2 -1  \n"

	stdout, _, err := execute(t, input, "batch", "--jobs", "2", "--precision", "3")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"2", "0.333", "0.5"}, strings.Fields(stdout)); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("* 2 3\n- 0 1\n"), 0o600))
	stdout, _, err = execute(t, "", "batch", "--output", "json", path)
	require.NoError(t, err)

	var got []map[string]string
	dec := json.NewDecoder(strings.NewReader(stdout))
	for dec.More() {
		var m map[string]string
		require.NoError(t, dec.Decode(&m))
		got = append(got, m)
	}
	want := []map[string]string{
		{"expr": "* 2 3", "result": "6"},
		{"expr": "- 0 1", "result": "-1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}

	_, _, err = execute(t, "1\n/ 1 0\n", "batch")
	require.ErrorIs(t, err, bigdecimal.ErrDivisionByZero)
	assert.ErrorContains(t, err, "expression 2")

	_, _, err = execute(t, "", "batch", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to open")
}

func TestRoot_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bigcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 2\n"), 0o600))

	stdout, _, err := execute(t, "", "eval", "--config", path, "/ 2 3")
	require.NoError(t, err)
	assert.Equal(t, "0.67\n", stdout)
}

func TestRoot_Logging(t *testing.T) {
	_, stderr, err := execute(t, "", "eval", "--log-level", "debug", "+ 1.5 2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "applied operator")
	assert.Contains(t, stderr, "result=3.5")

	_, stderr, err = execute(t, "", "eval", "--log-level", "debug", "--log-format", "json", "+ 1.5 2")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"applied operator"`)

	_, stderr, err = execute(t, "", "eval", "+ 1.5 2")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestRoot_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bigcalc.prom")

	_, _, err := execute(t, "", "eval", "--metrics-file", path, "+ * 2 3 1")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `bigcalc_operations_total{op="*"} 1`)
	assert.Contains(t, out, `bigcalc_operations_total{op="+"} 1`)
	assert.Contains(t, out, "bigcalc_expressions_total 1")
}
