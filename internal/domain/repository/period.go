package repository

// Period is a provider history range.
type Period string

const (
	Period1D  Period = "1d"
	Period5D  Period = "5d"
	Period1M  Period = "1mo"
	Period3M  Period = "3mo"
	Period6M  Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

// IsValidPeriod returns true if p is a supported range.
func IsValidPeriod(p Period) bool {
	switch p {
	case Period1D, Period5D, Period1M, Period3M, Period6M, Period1Y,
		Period2Y, Period5Y, Period10Y, PeriodYTD, PeriodMax:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default range.
func DefaultPeriod() Period { return Period1Y }

// NormalizePeriod converts raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}
