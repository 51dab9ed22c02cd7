// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/config"
	"github.com/javajoker/loanpro-backend/internal/logger"
	"github.com/javajoker/loanpro-backend/internal/models"
	"github.com/javajoker/loanpro-backend/internal/store"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

type AuthService struct {
	store         *store.Store
	cfg           *config.Config
	notifications *NotificationService
	log           *logrus.Entry
}

type LoginRequest struct {
	Username string      `json:"username" validate:"required"`
	Password string      `json:"password" validate:"required"`
	Role     models.Role `json:"role" validate:"required,oneof=admin customer"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,username"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Password  string `json:"password" validate:"required,strong_password"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func NewAuthService(st *store.Store, cfg *config.Config, notifications *NotificationService) *AuthService {
	return &AuthService{
		store:         st,
		cfg:           cfg,
		notifications: notifications,
		log:           logger.WithComponent("auth"),
	}
}

// SeedAdmin creates the configured administrator when it does not exist yet.
func (s *AuthService) SeedAdmin(ctx context.Context) error {
	_, err := s.store.FindUserByUsername(s.cfg.Admin.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	admin := models.User{
		Username:        s.cfg.Admin.Username,
		FirstName:       "System",
		LastName:        "Administrator",
		Email:           s.cfg.Admin.Email,
		Role:            models.RoleAdmin,
		AccountVerified: true,
	}
	if err := admin.SetPassword(s.cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}

	if _, err := s.store.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.log.WithField("username", admin.Username).Info("Default admin user created")
	return nil
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user := models.User{
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      models.RoleCustomer,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.WithField("user_id", created.ID).Info("Customer registered")

	go func(u models.User) {
		if err := s.notifications.SendWelcomeEmail(&u); err != nil {
			s.log.WithError(err).Warn("Failed to send welcome email")
		}
	}(created)

	return s.issueToken(&created)
}

// Login authenticates an administrator or a customer. A customer username
// that is not registered yet is provisioned on the fly as an unverified
// demo account using the supplied password.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.store.FindUserByUsername(strings.TrimSpace(req.Username))
	switch {
	case err == nil:
		if user.Role != req.Role {
			return nil, ErrInvalidCredentials
		}
		if err := user.CheckPassword(req.Password); err != nil {
			return nil, ErrInvalidCredentials
		}
	case errors.Is(err, store.ErrNotFound) && req.Role == models.RoleCustomer:
		user, err = s.provisionCustomer(ctx, strings.TrimSpace(req.Username), req.Password)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrInvalidCredentials
	default:
		return nil, err
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if updated, err := s.store.UpdateUser(ctx, user); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	} else {
		user = updated
	}

	return s.issueToken(&user)
}

func (s *AuthService) provisionCustomer(ctx context.Context, username, password string) (models.User, error) {
	user := models.User{
		Username:  username,
		FirstName: username,
		LastName:  "Doe",
		Email:     strings.ToLower(username) + "@example.com",
		Role:      models.RoleCustomer,
	}
	if err := user.SetPassword(password); err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to provision customer: %w", err)
	}

	s.log.WithField("user_id", created.ID).Info("Demo customer provisioned")
	return created, nil
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600, // Convert hours to seconds
	}, nil
}
