package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"", Period1Y},
		{"5d", Period5D},
		{"2y", Period2Y},
		{"ytd", PeriodYTD},
		{"7w", Period1Y},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePeriod(tt.in), tt.in)
	}
}
