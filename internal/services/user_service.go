// internal/services/user_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/logger"
	"github.com/javajoker/loanpro-backend/internal/models"
	"github.com/javajoker/loanpro-backend/internal/store"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

type UserService struct {
	store *store.Store
	log   *logrus.Entry
}

type UpdateUserProfileRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strong_password"`
}

type LinkBankAccountRequest struct {
	AccountNumber string `json:"account_number" validate:"required,bank_account"`
}

func NewUserService(st *store.Store) *UserService {
	return &UserService{
		store: st,
		log:   logger.WithComponent("users"),
	}
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateUserProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = strings.TrimSpace(req.LastName)
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}

	updated, err := s.store.UpdateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return err
	}

	if err := user.CheckPassword(req.CurrentPassword); err != nil {
		return ErrPasswordMismatch
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.log.WithField("user_id", userID).Info("Password changed")
	return nil
}

// LinkBankAccount stores the account number and marks the account verified,
// which unlocks loan applications.
func (s *UserService) LinkBankAccount(ctx context.Context, userID uuid.UUID, req *LinkBankAccountRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.BankAccountNumber = req.AccountNumber
	user.AccountVerified = true

	updated, err := s.store.UpdateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to link bank account: %w", err)
	}

	s.log.WithField("user_id", userID).Info("Bank account linked")
	return &updated, nil
}
