package command

import (
	"encoding"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// record is a single line of command output.
type record struct {
	Expr   string                 `json:"expr" yaml:"expr"`
	Result encoding.TextMarshaler `json:"result" yaml:"result"`
}

// ordering is the result of a comparison.
type ordering int

func (o ordering) String() string {
	switch {
	case o < 0:
		return "<"
	case o > 0:
		return ">"
	}
	return "="
}

func (o ordering) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// writeRecords writes recs to w in the configured output format.
// Text output is one result per line, json output is one object per line,
// and yaml output is a stream of documents.
func writeRecords(w io.Writer, format string, recs ...record) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		for _, r := range recs {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		for _, r := range recs {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return enc.Close()
	default:
		for _, r := range recs {
			text, err := r.Result.MarshalText()
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, string(text)); err != nil {
				return err
			}
		}
	}
	return nil
}
