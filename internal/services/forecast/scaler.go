package forecast

// MinMaxScaler maps each column onto [0,1] using the min and range seen in Fit.
// A column with zero range keeps a scale of 1, so it transforms to 0.
type MinMaxScaler struct {
	Min   []float64
	Scale []float64
}

// FitMinMax learns per-column statistics from rows.
func FitMinMax(rows [][]float64) *MinMaxScaler {
	if len(rows) == 0 {
		return &MinMaxScaler{}
	}
	width := len(rows[0])
	lo := make([]float64, width)
	hi := make([]float64, width)
	copy(lo, rows[0])
	copy(hi, rows[0])
	for _, r := range rows[1:] {
		for j, v := range r {
			if v < lo[j] {
				lo[j] = v
			}
			if v > hi[j] {
				hi[j] = v
			}
		}
	}
	scale := make([]float64, width)
	for j := range scale {
		if rng := hi[j] - lo[j]; rng != 0 {
			scale[j] = 1 / rng
		} else {
			scale[j] = 1
		}
	}
	return &MinMaxScaler{Min: lo, Scale: scale}
}

// Transform scales one row.
func (s *MinMaxScaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Min[j]) * s.Scale[j]
	}
	return out
}

// TransformAll scales every row.
func (s *MinMaxScaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = s.Transform(r)
	}
	return out
}

// Inverse maps a scaled value in column j back to original units.
func (s *MinMaxScaler) Inverse(j int, v float64) float64 {
	return v/s.Scale[j] + s.Min[j]
}
