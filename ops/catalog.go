package ops

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// CatalogEntry is the exported description of one operator.
type CatalogEntry struct {
	Op          string   `yaml:"op"`
	Type        string   `yaml:"type"`
	Arity       int      `yaml:"arity"`
	Commutative bool     `yaml:"commutative"`
	Associative bool     `yaml:"associative"`
	Categories  []string `yaml:"categories,flow"`
}

// Catalog describes the given operators, or every operator if none are given.
// An operator outside the table yields ErrUnknownOperatorMetadata.
func Catalog(subset ...Op) ([]CatalogEntry, error) {
	if len(subset) == 0 {
		subset = All()
	}
	entries := make([]CatalogEntry, 0, len(subset))
	for _, op := range subset {
		m, err := Lookup(op)
		if err != nil {
			return nil, err
		}
		n, err := Arity(op)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Display, err)
		}
		entries = append(entries, CatalogEntry{
			Op:          m.Display,
			Type:        m.Type.String(),
			Arity:       n,
			Commutative: m.Commutative,
			Associative: m.Associative,
			Categories:  op.Categories(),
		})
	}
	return entries, nil
}

// WriteCatalog encodes Catalog(subset...) as a YAML document.
func WriteCatalog(w io.Writer, subset ...Op) error {
	entries, err := Catalog(subset...)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := struct {
		Operators []CatalogEntry `yaml:"operators"`
	}{entries}
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
