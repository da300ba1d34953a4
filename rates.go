package depot

// baseRates holds the base interest rates ("Basiszins") published by the
// German ministry of finance, in percent per year.
var baseRates = map[int]float64{
	2018: 0.87,
	2019: 0.52,
	2020: 0.07,
	2021: 0.00,
	2022: 0.00,
	2023: 2.55,
}

// BaseRatePercent returns the published base interest rate for a year, in
// percent. Years before 2018 predate the advance taxation and always yield
// 0. The second return value is false for years without a published rate;
// callers must treat that as a fatal input error, never default it.
func BaseRatePercent(year int) (float64, bool) {
	if year < 2018 {
		return 0, true
	}
	rate, ok := baseRates[year]
	return rate, ok
}

// MonthFraction returns the fraction of the year credited to a lot acquired
// on the given date: full credit in January, minus 1/12 for every full month
// elapsed before the acquisition.
func MonthFraction(on Date) float64 {
	return (13.0 - float64(on.Month())) / 12.0
}
