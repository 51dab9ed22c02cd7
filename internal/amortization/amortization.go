// Package amortization computes equated monthly installments and expands
// them into per-period principal/interest/balance schedules.
package amortization

import (
	"math"

	"github.com/javajoker/loanpro-backend/internal/money"
)

const (
	MonthsPerYear        = 12
	PercentageMultiplier = 100
)

// Period is one row of an amortization schedule. Amounts are rounded to whole
// currency units independently per period.
type Period struct {
	Month     int     `json:"month"`
	EMI       float64 `json:"emi"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// Quote summarizes the cost of a loan before it is applied for.
type Quote struct {
	Principal     float64 `json:"principal"`
	InterestRate  float64 `json:"interest_rate"`
	TenureMonths  int     `json:"tenure_months"`
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

// MonthlyRate converts an annual percentage rate into a periodic rate.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / (PercentageMultiplier * MonthsPerYear)
}

// CalculateEMI returns the fixed monthly payment P·r·(1+r)^N / ((1+r)^N − 1).
// Any non-positive input yields 0. The result is always finite.
func CalculateEMI(principal, annualRate float64, tenureMonths int) float64 {
	if principal <= 0 || annualRate <= 0 || tenureMonths <= 0 {
		return 0
	}

	r := MonthlyRate(annualRate)
	power := math.Pow(1+r, float64(tenureMonths))
	switch {
	case power-1 == 0:
		// 1+r rounds to 1: the zero-rate limit applies.
		return principal / float64(tenureMonths)
	case math.IsInf(power, 1):
		return principal * r
	}

	emi := principal * r * power / (power - 1)
	if math.IsInf(emi, 0) || math.IsNaN(emi) {
		return principal / float64(tenureMonths)
	}
	return emi
}

// RoundedEMI is CalculateEMI rounded to cents.
func RoundedEMI(principal, annualRate float64, tenureMonths int) float64 {
	return money.RoundCents(CalculateEMI(principal, annualRate, tenureMonths))
}

// Schedule expands a loan into tenureMonths periods. The running balance is
// kept unrounded; only the reported values are rounded, so the last balance
// may be off zero by a unit and is clamped at 0.
func Schedule(principal, annualRate float64, tenureMonths int) []Period {
	emi := CalculateEMI(principal, annualRate, tenureMonths)
	if emi == 0 {
		return nil
	}

	r := MonthlyRate(annualRate)
	balance := principal
	periods := make([]Period, 0, tenureMonths)

	for month := 1; month <= tenureMonths; month++ {
		interest := balance * r
		principalPart := emi - interest
		balance -= principalPart

		periods = append(periods, Period{
			Month:     month,
			EMI:       money.RoundUnits(emi),
			Principal: money.RoundUnits(principalPart),
			Interest:  money.RoundUnits(interest),
			Balance:   money.NonNegative(money.RoundUnits(balance)),
		})
	}

	return periods
}

// NewQuote prices a loan at cent precision.
func NewQuote(principal, annualRate float64, tenureMonths int) Quote {
	emi := RoundedEMI(principal, annualRate, tenureMonths)
	total := money.Mul(emi, tenureMonths)
	interest := 0.0
	if emi > 0 {
		interest = money.NonNegative(money.Sub(total, principal))
	}

	return Quote{
		Principal:     principal,
		InterestRate:  annualRate,
		TenureMonths:  tenureMonths,
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: interest,
	}
}
