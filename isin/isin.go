// Package isin validates International Securities Identification Numbers.
package isin

import "fmt"

// Checker validates ISIN check digits. It caches validated ISINs and carries
// a skip set for pseudo-ISINs (currency pairs, indexes) that have no valid
// check digit. Create one per run and pass it by reference; there is no
// package-level instance.
type Checker struct {
	cache map[string]struct{}
	skip  map[string]struct{}
}

// NewChecker returns an empty Checker.
func NewChecker() *Checker {
	return &Checker{
		cache: make(map[string]struct{}),
		skip:  make(map[string]struct{}),
	}
}

// Skip marks an identifier as exempt from validation, e.g. the synthetic
// EURUSD entries of the price database.
func (c *Checker) Skip(isin string) {
	c.skip[isin] = struct{}{}
}

// Valid reports whether the ISIN's check digit is correct.
func (c *Checker) Valid(isin string) bool {
	if _, ok := c.skip[isin]; ok {
		return true
	}
	if len(isin) != 12 {
		return false
	}
	if _, ok := c.cache[isin]; ok {
		return true
	}

	want := int(isin[11] - '0')
	got, ok := checkDigit(isin[:11])
	if ok && want == got {
		c.cache[isin] = struct{}{}
		return true
	}
	return false
}

// Check is like Valid but returns a descriptive error instead of false.
func (c *Checker) Check(isins ...string) error {
	for _, isin := range isins {
		if !c.Valid(isin) {
			return fmt.Errorf("invalid ISIN: %q", isin)
		}
	}
	return nil
}

// checkDigit computes the check digit over the first 11 characters of an
// ISIN. ok is false when the input contains characters outside [0-9A-Z].
//
// Letters expand to two digits (A=10 .. Z=35); the digit string is then
// weighted 2,1,2,1,... from the right, the cross sums of the products are
// added, and the check digit is (10 - sum%10) % 10.
func checkDigit(body string) (digit int, ok bool) {
	var digits []int
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			digits = append(digits, v/10, v%10)
		case r >= 'a' && r <= 'z':
			v := int(r-'a') + 10
			digits = append(digits, v/10, v%10)
		default:
			return 0, false
		}
	}

	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		product := digits[i] * weight
		sum += product/10 + product%10
		if weight == 2 {
			weight = 1
		} else {
			weight = 2
		}
	}
	return (10 - sum%10) % 10, true
}
