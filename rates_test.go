package depot

import (
	"testing"
	"time"
)

func TestBaseRatePercent(t *testing.T) {
	tests := []struct {
		year int
		want float64
		ok   bool
	}{
		{2017, 0, true},
		{1999, 0, true},
		{2018, 0.87, true},
		{2019, 0.52, true},
		{2020, 0.07, true},
		{2021, 0, true},
		{2022, 0, true},
		{2023, 2.55, true},
		{2024, 0, false},
		{2099, 0, false},
	}
	for _, tc := range tests {
		got, ok := BaseRatePercent(tc.year)
		if got != tc.want || ok != tc.ok {
			t.Errorf("BaseRatePercent(%d) = %v, %v, want %v, %v", tc.year, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMonthFraction(t *testing.T) {
	tests := []struct {
		month time.Month
		want  float64
	}{
		{time.January, 12.0 / 12.0},
		{time.February, 11.0 / 12.0},
		{time.March, 10.0 / 12.0},
		{time.June, 7.0 / 12.0},
		{time.December, 1.0 / 12.0},
	}
	for _, tc := range tests {
		on := NewDate(2021, tc.month, 15)
		if got := MonthFraction(on); got != tc.want {
			t.Errorf("MonthFraction(%s) = %v, want %v", on, got, tc.want)
		}
	}
}
