package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/loanpro-backend/internal/models"
)

// userRecord keeps the password hash in the snapshot even though the
// API representation of a user omits it.
type userRecord struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func toRecord(u models.User) userRecord {
	return userRecord{User: u, PasswordHash: u.PasswordHash}
}

func (r userRecord) user() models.User {
	u := r.User
	u.PasswordHash = r.PasswordHash
	return u
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().UTC()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnique(user); err != nil {
		return models.User{}, err
	}

	s.users = append(s.users, toRecord(user))
	if err := s.persist(ctx, KeyUsers, s.users); err != nil {
		s.users = s.users[:len(s.users)-1]
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) GetUser(id uuid.UUID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.userIndex(id); i >= 0 {
		return s.users[i].user(), nil
	}
	return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// FindUserByUsername matches case-insensitively.
func (s *Store) FindUserByUsername(username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.users {
		if strings.EqualFold(r.Username, username) {
			return r.user(), nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

func (s *Store) FindUserByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.users {
		if strings.EqualFold(r.Email, email) {
			return r.user(), nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", email, ErrNotFound)
}

// UpdateUser replaces the stored user with the same id.
func (s *Store) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndex(user.ID)
	if i < 0 {
		return models.User{}, fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	if err := s.checkUnique(user); err != nil {
		return models.User{}, err
	}

	prev := s.users[i]
	user.CreatedAt = prev.CreatedAt
	user.UpdatedAt = time.Now().UTC()

	s.users[i] = toRecord(user)
	if err := s.persist(ctx, KeyUsers, s.users); err != nil {
		s.users[i] = prev
		return models.User{}, err
	}
	return user, nil
}

// checkUnique must be called with s.mu held.
func (s *Store) checkUnique(user models.User) error {
	for _, r := range s.users {
		if r.ID == user.ID {
			continue
		}
		if strings.EqualFold(r.Username, user.Username) {
			return fmt.Errorf("%q: %w", user.Username, ErrDuplicateUser)
		}
		if user.Email != "" && strings.EqualFold(r.Email, user.Email) {
			return fmt.Errorf("%q: %w", user.Email, ErrDuplicateEmail)
		}
	}
	return nil
}

func (s *Store) userIndex(id uuid.UUID) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}
