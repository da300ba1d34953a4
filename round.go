package depot

// pow10 covers the decimal place counts supported by Round.
var pow10 = [...]float64{1, 10, 100, 1000, 10000, 100000}

// Round rounds half away from zero to the given number of decimal places
// (0 to 5).
//
// The 0.5000000001 offset compensates the binary representation error of
// values near exact halves: 1.005 is stored slightly below 1.005 and would
// otherwise round down. All tax figures are rounded with this exact rule, so
// results stay comparable digit for digit across program versions.
func Round(v float64, digits int) float64 {
	if digits < 0 || digits >= len(pow10) {
		panic("depot: unsupported decimal place count")
	}
	sign := 1.0
	if v < 0 {
		sign = -1.0
		v = -v
	}
	return sign * float64(int64(0.5000000001+v*pow10[digits])) / pow10[digits]
}

// Sign returns -1, 0 or 1 depending on the sign of v.
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
