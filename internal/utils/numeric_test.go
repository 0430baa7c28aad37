package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{"12.5", 12.5, true},
		{"12,5", 12.5, true},
		{" 7 ", 7, true},
		{"-2", -2, true},
		{"", 0, false},
		{"   ", 0, false},
		{"dez", 0, false},
	}

	for _, tt := range tests {
		v, ok := ParseDecimal(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, v, "input %q", tt.in)
		}
	}
}

func TestFormatScoreIsLocaleStable(t *testing.T) {
	assert.Equal(t, "-2", FormatScore(-2))
	assert.Equal(t, "12.5", FormatScore(12.5))
	assert.Equal(t, "100", FormatScore(100))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, -1.13, Round2(-1.129032))
	assert.Equal(t, 1.0, Round2(1.0))
	assert.Equal(t, 0.67, Round2(0.666))
}
