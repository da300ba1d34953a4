package depot

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   float64
	}{
		{1.2341, 4, 1.2341},
		{1.2341, 3, 1.234},
		{1.2345, 3, 1.235},
		{-1.2341, 3, -1.234},
		{-1.2345, 3, -1.235},
		// 1.005 is stored as 1.00499999...; plain half-up on the binary
		// value would round down.
		{1.005, 2, 1.01},
		{-1.005, 2, -1.01},
		{2.675, 2, 2.68},
		{1.0, 2, 1.0},
		{0, 2, 0},
		{0.125, 2, 0.13},
	}
	for _, tc := range tests {
		if got := Round(tc.v, tc.digits); got != tc.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tc.v, tc.digits, got, tc.want)
		}
	}
}

func TestSign(t *testing.T) {
	if got := Sign(-3.3); got != -1 {
		t.Errorf("Sign(-3.3) = %d, want -1", got)
	}
	if got := Sign(4.3); got != 1 {
		t.Errorf("Sign(4.3) = %d, want 1", got)
	}
	if got := Sign(0); got != 0 {
		t.Errorf("Sign(0) = %d, want 0", got)
	}
}
