// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/logger"
	"github.com/javajoker/loanpro-backend/internal/models"
	"github.com/javajoker/loanpro-backend/internal/store/kv"
)

// Snapshot keys.
const (
	KeyUsers            = "users"
	KeyLoanApplications = "loanApplications"
	KeyLoanPayments     = "loanPayments"
)

// Store keeps users, loan applications and payments in memory and writes
// the affected list back to its backend after every mutation.
type Store struct {
	mu       sync.RWMutex
	backend  kv.Backend
	log      *logrus.Entry
	users    []userRecord
	apps     []models.LoanApplication
	payments []models.LoanPayment
}

// Open loads the snapshot from backend. Missing keys start empty.
func Open(ctx context.Context, backend kv.Backend) (*Store, error) {
	s := &Store{
		backend: backend,
		log:     logger.WithComponent("store"),
	}

	if err := s.load(ctx, KeyUsers, &s.users); err != nil {
		return nil, err
	}
	if err := s.load(ctx, KeyLoanApplications, &s.apps); err != nil {
		return nil, err
	}
	if err := s.load(ctx, KeyLoanPayments, &s.payments); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"users":        len(s.users),
		"applications": len(s.apps),
		"payments":     len(s.payments),
	}).Info("Snapshot loaded")
	return s, nil
}

func (s *Store) load(ctx context.Context, key string, dst interface{}) error {
	data, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !found || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context, key string, src interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.backend.Put(ctx, key, data); err != nil {
		s.log.WithError(err).WithField("key", key).Error("Failed to persist snapshot")
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}
