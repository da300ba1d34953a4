package store

import "fmt"

// Depot is one custody account from the depot file.
type Depot struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"waehrung"`
}

// Depots is the loaded depot file, indexed by name.
type Depots struct {
	list  []*Depot
	index map[string]*Depot
}

// LoadDepots reads and validates the depot file.
func LoadDepots(path string) (*Depots, error) {
	docs, err := loadDocuments[Depot](path)
	if err != nil {
		return nil, err
	}
	d := &Depots{index: make(map[string]*Depot)}
	for i, doc := range docs {
		if err := notEmpty("name", doc.Name); err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, i+1, err)
		}
		if err := notEmpty("waehrung", doc.Currency); err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, i+1, err)
		}
		if _, dup := d.index[doc.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate depot %q", path, doc.Name)
		}
		d.list = append(d.list, doc)
		d.index[doc.Name] = doc
	}
	return d, nil
}

// Currency returns the valuation currency of the named depot.
func (d *Depots) Currency(name string) (string, bool) {
	dep, ok := d.index[name]
	if !ok {
		return "", false
	}
	return dep.Currency, true
}

// Has reports whether the depot name is known.
func (d *Depots) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// All returns the depots in file order.
func (d *Depots) All() []*Depot { return d.list }
