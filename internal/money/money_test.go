package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		val    float64
		places int32
		want   float64
	}{
		{"half up to units", 512.5, 0, 513},
		{"below half", 512.49, 0, 512},
		{"cents", 512.9049, 2, 512.9},
		{"cents half", 1.005, 2, 1.01},
		{"negative half away from zero", -2.5, 0, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.val, tt.places))
		})
	}
}

func TestRoundHelpers(t *testing.T) {
	assert.Equal(t, 513.0, RoundUnits(512.9))
	assert.Equal(t, 512.9, RoundCents(512.899))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.3, Sum(0.1, 0.2))
	assert.Equal(t, 0.0, Sum())
	assert.Equal(t, 1539.0, Sum(513, 513, 513))
}

func TestSubMul(t *testing.T) {
	assert.Equal(t, 0.1, Sub(0.3, 0.2))
	assert.Equal(t, 30780.0, Mul(513, 60))
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(10, 11, UnitTolerance))
	assert.False(t, WithinTolerance(10, 11.5, UnitTolerance))
}

func TestNonNegative(t *testing.T) {
	assert.Equal(t, 0.0, NonNegative(-0.4))
	assert.Equal(t, 3.0, NonNegative(3))
}
