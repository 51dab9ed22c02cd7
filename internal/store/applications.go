package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/models"
)

type ApplicationFilter struct {
	CustomerID *uuid.UUID
	Status     models.ApplicationStatus
}

func (f ApplicationFilter) matches(app *models.LoanApplication) bool {
	if f.CustomerID != nil && app.CustomerID != *f.CustomerID {
		return false
	}
	if f.Status != "" && app.Status != f.Status {
		return false
	}
	return true
}

// AddApplication assigns an id and timestamps when missing and stores app.
func (s *Store) AddApplication(ctx context.Context, app models.LoanApplication) (models.LoanApplication, error) {
	now := time.Now().UTC()
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.AppliedDate.IsZero() {
		app.AppliedDate = now
	}
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	app.CreatedAt = now
	app.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()

	s.apps = append(s.apps, app)
	if err := s.persist(ctx, KeyLoanApplications, s.apps); err != nil {
		s.apps = s.apps[:len(s.apps)-1]
		return models.LoanApplication{}, err
	}
	return app, nil
}

func (s *Store) GetApplication(id uuid.UUID) (models.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.applicationIndex(id); i >= 0 {
		return s.apps[i], nil
	}
	return models.LoanApplication{}, fmt.Errorf("loan application %s: %w", id, ErrNotFound)
}

// GetCustomerApplication hides applications owned by other customers as not found.
func (s *Store) GetCustomerApplication(id, customerID uuid.UUID) (models.LoanApplication, error) {
	app, err := s.GetApplication(id)
	if err != nil {
		return app, err
	}
	if app.CustomerID != customerID {
		return models.LoanApplication{}, fmt.Errorf("loan application %s: %w", id, ErrNotFound)
	}
	return app, nil
}

// ListApplications returns matching applications, newest first.
func (s *Store) ListApplications(filter ApplicationFilter) []models.LoanApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LoanApplication, 0)
	for i := range s.apps {
		if filter.matches(&s.apps[i]) {
			out = append(out, s.apps[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedDate.After(out[j].AppliedDate)
	})
	return out
}

// UpdateApplicationStatus decides a pending application. Decisions are final.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, reason string, adminID uuid.UUID) (models.LoanApplication, error) {
	if !status.IsDecision() {
		return models.LoanApplication{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.applicationIndex(id)
	if i < 0 {
		return models.LoanApplication{}, fmt.Errorf("loan application %s: %w", id, ErrNotFound)
	}

	prev := s.apps[i]
	if !prev.IsPending() {
		return prev, fmt.Errorf("loan application %s is %s: %w", id, prev.Status, ErrAlreadyDecided)
	}

	now := time.Now().UTC()
	decidedBy := adminID
	updated := prev
	updated.Status = status
	updated.Reason = reason
	updated.DecidedAt = &now
	updated.DecidedBy = &decidedBy
	updated.UpdatedAt = now

	s.apps[i] = updated
	if err := s.persist(ctx, KeyLoanApplications, s.apps); err != nil {
		s.apps[i] = prev
		return models.LoanApplication{}, err
	}

	s.log.WithFields(logrus.Fields{
		"application_id": id,
		"status":         status,
		"admin_id":       adminID,
	}).Info("Loan application decided")
	return updated, nil
}

func (s *Store) applicationIndex(id uuid.UUID) int {
	for i := range s.apps {
		if s.apps[i].ID == id {
			return i
		}
	}
	return -1
}
