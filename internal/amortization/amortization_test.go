package amortization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/loanpro-backend/internal/money"
)

func TestCalculateEMI(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		annualRate    float64
		tenureMonths  int
		expectedRange []float64 // [min, max]
	}{
		{
			name:          "car loan shown on the landing page",
			principal:     25000,
			annualRate:    8.5,
			tenureMonths:  60,
			expectedRange: []float64{512.5, 513.5},
		},
		{
			name:          "30-year home loan",
			principal:     240000,
			annualRate:    6.0,
			tenureMonths:  360,
			expectedRange: []float64{1438, 1440},
		},
		{
			name:          "single month",
			principal:     1000,
			annualRate:    12,
			tenureMonths:  1,
			expectedRange: []float64{1010, 1010},
		},
		{
			name:          "high interest personal loan",
			principal:     10000,
			annualRate:    18.0,
			tenureMonths:  36,
			expectedRange: []float64{361, 362},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emi := CalculateEMI(tt.principal, tt.annualRate, tt.tenureMonths)
			assert.GreaterOrEqual(t, emi, tt.expectedRange[0]-1e-9)
			assert.LessOrEqual(t, emi, tt.expectedRange[1]+1e-9)
		})
	}
}

func TestCalculateEMIDegenerateInputs(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		tenure     int
	}{
		{"zero principal", 0, 8.5, 60},
		{"negative principal", -100, 8.5, 60},
		{"zero rate", 25000, 0, 60},
		{"negative rate", 25000, -1, 60},
		{"zero tenure", 25000, 8.5, 0},
		{"negative tenure", 25000, 8.5, -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, CalculateEMI(tt.principal, tt.annualRate, tt.tenure))
			assert.Nil(t, Schedule(tt.principal, tt.annualRate, tt.tenure))
		})
	}
}

func TestCalculateEMIVanishingRate(t *testing.T) {
	// r is positive but too small for 1+r to differ from 1.
	emi := CalculateEMI(25000, 1e-300, 60)
	assert.False(t, math.IsInf(emi, 0))
	assert.InDelta(t, 25000.0/60, emi, 1e-9)

	var periods []Period
	require.NotPanics(t, func() { periods = Schedule(25000, 1e-300, 60) })
	require.Len(t, periods, 60)
	assert.Equal(t, 417.0, periods[0].EMI)
	assert.Equal(t, 0.0, periods[0].Interest)

	var q Quote
	require.NotPanics(t, func() { q = NewQuote(25000, 1e-300, 60) })
	assert.Equal(t, 416.67, q.EMI)
}

func TestEMICoversPrincipal(t *testing.T) {
	principals := []float64{1, 500, 25000, 1e6}
	rates := []float64{0.01, 7.5, 12.5, 36}
	tenures := []int{1, 12, 60, 360}

	for _, p := range principals {
		for _, r := range rates {
			for _, n := range tenures {
				emi := CalculateEMI(p, r, n)
				assert.GreaterOrEqual(t, emi*float64(n), p*(1-1e-12),
					"EMI×N must cover principal for P=%v R=%v N=%v", p, r, n)
			}
		}
	}
}

func TestRoundedEMI(t *testing.T) {
	emi := RoundedEMI(25000, 8.5, 60)
	assert.Equal(t, money.RoundCents(CalculateEMI(25000, 8.5, 60)), emi)
	assert.Equal(t, 513.0, money.RoundUnits(emi))
}

func TestSchedule(t *testing.T) {
	periods := Schedule(25000, 8.5, 60)
	require.Len(t, periods, 60)

	first := periods[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 513.0, first.EMI)
	assert.Equal(t, 177.0, first.Interest)
	assert.Equal(t, 336.0, first.Principal)

	last := periods[len(periods)-1]
	assert.Equal(t, 60, last.Month)
	assert.LessOrEqual(t, last.Balance, money.UnitTolerance)
}

func TestScheduleBalanceInvariant(t *testing.T) {
	cases := []struct {
		principal float64
		rate      float64
		tenure    int
	}{
		{25000, 8.5, 60},
		{100000, 7.5, 240},
		{1500, 15, 6},
		{999.99, 11, 13},
	}

	for _, c := range cases {
		periods := Schedule(c.principal, c.rate, c.tenure)
		require.Len(t, periods, c.tenure)

		previous := money.RoundUnits(c.principal)
		for _, p := range periods {
			expected := previous - p.Principal
			assert.True(t, money.WithinTolerance(expected, p.Balance, money.UnitTolerance),
				"month %d: %v - %v = %v, got %v", p.Month, previous, p.Principal, expected, p.Balance)
			assert.True(t, money.WithinTolerance(p.EMI, p.Principal+p.Interest, money.UnitTolerance))
			previous = p.Balance
		}
	}
}

func TestScheduleInterestDeclines(t *testing.T) {
	periods := Schedule(50000, 10, 48)
	for i := 1; i < len(periods); i++ {
		assert.LessOrEqual(t, periods[i].Interest, periods[i-1].Interest)
		assert.GreaterOrEqual(t, periods[i].Principal, periods[i-1].Principal)
	}
}

func TestNewQuote(t *testing.T) {
	q := NewQuote(25000, 8.5, 60)
	assert.Equal(t, RoundedEMI(25000, 8.5, 60), q.EMI)
	assert.InDelta(t, q.EMI*60, q.TotalPayment, 1e-6)
	assert.InDelta(t, q.TotalPayment-25000, q.TotalInterest, 1e-6)
	assert.Greater(t, q.TotalInterest, 0.0)

	zero := NewQuote(25000, 0, 60)
	assert.Equal(t, 0.0, zero.EMI)
	assert.Equal(t, 0.0, zero.TotalPayment)
	assert.Equal(t, 0.0, zero.TotalInterest)
}

func TestMonthlyRate(t *testing.T) {
	assert.True(t, math.Abs(MonthlyRate(12)-0.01) < 1e-15)
}
