package features

import "math"

// RollingMean returns the trailing mean over window bars. Positions before the
// window is full, or whose window holds a NaN, are NaN.
func RollingMean(xs []float64, window int) []float64 {
	out := nanSlice(len(xs))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		sum := 0.0
		for _, v := range xs[i-window+1 : i+1] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}

// RollingStd returns the trailing sample standard deviation (n-1 denominator).
func RollingStd(xs []float64, window int) []float64 {
	out := nanSlice(len(xs))
	if window <= 1 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		out[i] = SampleStd(xs[i-window+1 : i+1])
	}
	return out
}

// EWM is the recursive exponential mean with alpha = 2/(span+1), seeded with the
// first value.
func EWM(xs []float64, span int) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSI is 100 - 100/(1+RS) where RS is the rolling mean gain over the rolling mean
// loss magnitude. A zero loss mean makes RS undefined, reported as NaN.
func RSI(closes []float64, period int) []float64 {
	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains[i] = d
		} else if d < 0 {
			losses[i] = -d
		}
	}
	avgGain := RollingMean(gains, period)
	avgLoss := RollingMean(losses, period)

	out := nanSlice(n)
	for i := range out {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) || avgLoss[i] == 0 {
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// PercentChange is (x[i]-x[i-1])/x[i-1]; the first element and zero
// denominators are NaN.
func PercentChange(xs []float64) []float64 {
	out := nanSlice(len(xs))
	for i := 1; i < len(xs); i++ {
		if xs[i-1] == 0 {
			continue
		}
		out[i] = (xs[i] - xs[i-1]) / xs[i-1]
	}
	return out
}

// Returns is PercentChange with the undefined entries removed.
func Returns(closes []float64) []float64 {
	pc := PercentChange(closes)
	out := make([]float64, 0, len(pc))
	for _, v := range pc {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Momentum returns x[i] - x[i-lag]; the first lag entries are NaN.
func Momentum(xs []float64, lag int) []float64 {
	out := nanSlice(len(xs))
	for i := lag; i < len(xs); i++ {
		out[i] = xs[i] - xs[i-lag]
	}
	return out
}

// Mean of xs; NaN when empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

// SampleStd is the n-1 standard deviation; NaN with fewer than two values.
func SampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	m := Mean(xs)
	ss := 0.0
	for _, v := range xs {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
