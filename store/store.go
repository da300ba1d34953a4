// Package store reads the master-data and transaction files of the depot.
//
// All files are sequences of YAML documents, one record per document, kept
// human-editable. The store validates them on load (mandatory fields,
// well-formed dates and amounts, ISIN check digits, cross references to the
// depot list) so that every later stage can rely on clean data.
package store

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// flexString accepts any YAML scalar and keeps its literal text. The data
// files mix quoted and unquoted numbers; a plain string field would reject
// the unquoted ones.
type flexString string

func (f *flexString) UnmarshalYAML(value *yaml.Node) error {
	*f = flexString(value.Value)
	return nil
}

// loadDocuments decodes every YAML document of the file at path into a new T
// and returns them in file order.
func loadDocuments[T any](path string) ([]*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []*T
	dec := yaml.NewDecoder(f)
	for {
		doc := new(T)
		err := dec.Decode(doc)
		if err == io.EOF {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
}

// parseDecimal parses a German formatted decimal ("1.234,56").
func parseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// oneOf reports a descriptive error when value is not in the allowed set.
// Comparison is case-insensitive, matching the files' loose spelling.
func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%s is %q, want one of: %s", field, value, strings.Join(allowed, ", "))
}

// notEmpty reports an error when a mandatory field is empty.
func notEmpty(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is empty", field)
	}
	return nil
}
