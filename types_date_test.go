package depot

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1.2.2013")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.String(); got != "01.02.2013" {
		t.Errorf("String() = %q, want %q", got, "01.02.2013")
	}

	d = MustParseDate("21.12.2014")
	if got := d.String(); got != "21.12.2014" {
		t.Errorf("String() = %q, want %q", got, "21.12.2014")
	}
	if got := d.ISO(); got != "2014-12-21" {
		t.Errorf("ISO() = %q, want %q", got, "2014-12-21")
	}

	if _, err := ParseDate("2014-12-21"); err == nil {
		t.Error("expected error for ISO input")
	}
	if _, err := ParseISODate("2014-12-21"); err != nil {
		t.Errorf("ParseISODate: %v", err)
	}
}

func TestDateOrder(t *testing.T) {
	a := NewDate(2021, time.March, 15)
	b := NewDate(2021, time.March, 16)
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before: %s vs %s", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After: %s vs %s", a, b)
	}
	if a.After(a) || a.Before(a) {
		t.Error("a date is neither before nor after itself")
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2021, time.December, 31).AddDays(1)
	if want := NewDate(2022, time.January, 1); d != want {
		t.Errorf("AddDays(1) = %s, want %s", d, want)
	}
	d = NewDate(2021, time.March, 1).AddDays(-1)
	if want := NewDate(2021, time.February, 28); d != want {
		t.Errorf("AddDays(-1) = %s, want %s", d, want)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2021, time.June, 2)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"02.06.2021"` {
		t.Errorf("MarshalJSON = %s", b)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("roundtrip = %s, want %s", back, d)
	}
}
