package models

import "time"

// Bar is one daily OHLCV record.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a chronological run of daily bars. Treat it as read-only once fetched.
type Series []Bar

// Closes returns the close prices in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Last returns the most recent bar. Callers must check Len first.
func (s Series) Last() Bar { return s[len(s)-1] }

// Len is the number of bars.
func (s Series) Len() int { return len(s) }

// Tail returns at most the last n bars.
func (s Series) Tail(n int) Series {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
