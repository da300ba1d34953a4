package depot

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"kauf", KindBuy, true},
		{"verkauf", KindSell, true},
		{"ausschuettung", KindDistribution, true},
		// Carry-forward lots are seeded by the engine, never read from a file.
		{"uebertrag", "", false},
		{"dividende", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseKind(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseKind(%q) accepted", tc.in)
		}
	}
}
