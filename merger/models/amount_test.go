package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$1,200.00", 1200},
		{"1200", 1200},
		{"$1200", 1200},
		{" $99.50 ", 99.5},
		{"", 0},
		{"n/a", 0},
		{"$", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

// Summing noisy representations of the same amount is invariant to the
// noise.
func TestParseAmountNoiseInvariance(t *testing.T) {
	total := ParseAmount("$1,200.00") + ParseAmount("1200")
	assert.Equal(t, "$2400.00", FormatAmount(total))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$0.00", FormatAmount(0))
	assert.Equal(t, "$1234.50", FormatAmount(1234.5))
}
