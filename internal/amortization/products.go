package amortization

import "strings"

// DefaultInterestRate applies to purposes without a listed product.
const DefaultInterestRate = 12.0

type LoanProduct struct {
	Purpose      string  `json:"purpose"`
	InterestRate float64 `json:"interest_rate"`
}

var loanProducts = []LoanProduct{
	{Purpose: "Personal", InterestRate: 12.5},
	{Purpose: "Car", InterestRate: 8.5},
	{Purpose: "Home", InterestRate: 7.5},
	{Purpose: "Education", InterestRate: 10.0},
	{Purpose: "Business", InterestRate: 15.0},
	{Purpose: "Medical", InterestRate: 11.0},
}

// Products returns a copy of the loan catalog.
func Products() []LoanProduct {
	out := make([]LoanProduct, len(loanProducts))
	copy(out, loanProducts)
	return out
}

func lookup(purpose string) (LoanProduct, bool) {
	for _, p := range loanProducts {
		if strings.EqualFold(p.Purpose, strings.TrimSpace(purpose)) {
			return p, true
		}
	}
	return LoanProduct{}, false
}

// InterestRateFor returns the annual rate for a purpose, or DefaultInterestRate.
func InterestRateFor(purpose string) float64 {
	if p, ok := lookup(purpose); ok {
		return p.InterestRate
	}
	return DefaultInterestRate
}

// IsKnownPurpose reports whether purpose is in the catalog.
func IsKnownPurpose(purpose string) bool {
	_, ok := lookup(purpose)
	return ok
}

// CanonicalPurpose returns the catalog spelling of purpose.
func CanonicalPurpose(purpose string) string {
	if p, ok := lookup(purpose); ok {
		return p.Purpose
	}
	return strings.TrimSpace(purpose)
}
