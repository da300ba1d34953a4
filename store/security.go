package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MStrecke/depotauswertung/isin"
)

// Security types as spelled in the master-data file.
const (
	TypeETF      = "etf"
	TypeFund     = "fonds"
	TypeCurrency = "currency"
	TypeIndex    = "index"
)

var exemptionRx = regexp.MustCompile(`^\d+%$`)

// Security is one instrument from the master-data file.
type Security struct {
	ISIN             string     `yaml:"isin"`
	Name             string     `yaml:"name"`
	Currency         string     `yaml:"kurswaehrung"`
	PartialExemption flexString `yaml:"teilfreistellung"`
	Type             string     `yaml:"typ"`
	Accumulating     bool       `yaml:"thesaurierend"`
	WKN              string     `yaml:"wkn"`
	OnvistaEntity    flexString `yaml:"onvista_entity"`
	OnvistaNotation  flexString `yaml:"onvista_notation"`
}

// IsCurrencyOrIndex reports whether the entry is a helper instrument rather
// than a holding. Those carry synthetic ISINs without a valid check digit.
func (s *Security) IsCurrencyOrIndex() bool {
	return strings.EqualFold(s.Type, TypeCurrency) || strings.EqualFold(s.Type, TypeIndex)
}

// ExemptionFraction converts the declared partial exemption ("30%") into a
// fraction (0.30).
func (s *Security) ExemptionFraction() (float64, error) {
	v := string(s.PartialExemption)
	if !exemptionRx.MatchString(v) {
		return 0, fmt.Errorf("teilfreistellung %q: want a percentage like 30%%", v)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(v, "%"))
	if err != nil {
		return 0, err
	}
	return float64(n) / 100.0, nil
}

func (s *Security) check() error {
	if err := notEmpty("isin", s.ISIN); err != nil {
		return err
	}
	if err := notEmpty("name", s.Name); err != nil {
		return err
	}
	if err := notEmpty("kurswaehrung", s.Currency); err != nil {
		return err
	}
	if err := oneOf("typ", s.Type, TypeETF, TypeFund, TypeCurrency, TypeIndex); err != nil {
		return err
	}
	if !s.IsCurrencyOrIndex() {
		if _, err := s.ExemptionFraction(); err != nil {
			return err
		}
	}
	return nil
}

// Securities is the loaded master-data file, indexed by ISIN.
type Securities struct {
	list  []*Security
	index map[string]*Security
}

// LoadSecurities reads and validates the master-data file. Check digits are
// verified for every entry except currencies and indexes, whose synthetic
// ISINs are registered as known exceptions instead.
func LoadSecurities(path string, checker *isin.Checker) (*Securities, error) {
	docs, err := loadDocuments[Security](path)
	if err != nil {
		return nil, err
	}
	s := &Securities{index: make(map[string]*Security)}
	for i, doc := range docs {
		if err := doc.check(); err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, i+1, err)
		}
		if _, dup := s.index[doc.ISIN]; dup {
			return nil, fmt.Errorf("%s: duplicate isin %s", path, doc.ISIN)
		}
		if doc.IsCurrencyOrIndex() {
			checker.Skip(doc.ISIN)
		} else if err := checker.Check(doc.ISIN); err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, i+1, err)
		}
		s.list = append(s.list, doc)
		s.index[doc.ISIN] = doc
	}
	return s, nil
}

// Get returns the security with the given ISIN.
func (s *Securities) Get(code string) (*Security, bool) {
	sec, ok := s.index[code]
	return sec, ok
}

// All returns the securities in file order.
func (s *Securities) All() []*Security { return s.list }

// Has reports whether the ISIN is known.
func (s *Securities) Has(code string) bool {
	_, ok := s.index[code]
	return ok
}
