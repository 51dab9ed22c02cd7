package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/loanpro-backend/internal/models"
)

func (s *Store) AddPayment(ctx context.Context, payment models.LoanPayment) (models.LoanPayment, error) {
	out, err := s.AddPayments(ctx, []models.LoanPayment{payment})
	if err != nil {
		return models.LoanPayment{}, err
	}
	return out[0], nil
}

// AddPayments records a batch atomically. A second completed payment for
// the same loan month is rejected.
func (s *Store) AddPayments(ctx context.Context, payments []models.LoanPayment) ([]models.LoanPayment, error) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.LoanPayment, 0, len(payments))
	for _, p := range payments {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.PaymentDate.IsZero() {
			p.PaymentDate = now
		}
		if p.IsCompleted() && p.EMIMonth != models.FullSettlementMonth {
			if s.hasCompletedPayment(p.LoanID, p.EMIMonth) || containsMonth(out, p.LoanID, p.EMIMonth) {
				return nil, fmt.Errorf("loan %s month %d: %w", p.LoanID, p.EMIMonth, ErrDuplicatePayment)
			}
		}
		out = append(out, p)
	}

	prevLen := len(s.payments)
	s.payments = append(s.payments, out...)
	if err := s.persist(ctx, KeyLoanPayments, s.payments); err != nil {
		s.payments = s.payments[:prevLen]
		return nil, err
	}
	return out, nil
}

// PaymentsForLoan returns every recorded attempt for loanID, oldest first.
func (s *Store) PaymentsForLoan(loanID uuid.UUID) []models.LoanPayment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LoanPayment, 0)
	for _, p := range s.payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PaymentDate.Before(out[j].PaymentDate)
	})
	return out
}

func (s *Store) hasCompletedPayment(loanID uuid.UUID, month int) bool {
	for _, p := range s.payments {
		if p.LoanID == loanID && p.EMIMonth == month && p.IsCompleted() {
			return true
		}
	}
	return false
}

func containsMonth(payments []models.LoanPayment, loanID uuid.UUID, month int) bool {
	for _, p := range payments {
		if p.LoanID == loanID && p.EMIMonth == month && p.IsCompleted() {
			return true
		}
	}
	return false
}
