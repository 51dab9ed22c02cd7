// internal/services/admin_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/logger"
	"github.com/javajoker/loanpro-backend/internal/models"
	"github.com/javajoker/loanpro-backend/internal/money"
	"github.com/javajoker/loanpro-backend/internal/store"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

// DefaultRejectionReason is recorded when an approver gives none.
const DefaultRejectionReason = "Application did not meet criteria"

type AdminService struct {
	store               *store.Store
	notificationService *NotificationService
	log                 *logrus.Entry
}

type AdminDashboardStats struct {
	TotalApplications     int     `json:"total_applications"`
	PendingApplications   int     `json:"pending_applications"`
	ApprovedApplications  int     `json:"approved_applications"`
	RejectedApplications  int     `json:"rejected_applications"`
	TotalDisbursed        float64 `json:"total_disbursed"`
	TotalCollected        float64 `json:"total_collected"`
	FailedPayments        int     `json:"failed_payments"`
	ApplicationsThisMonth int     `json:"applications_this_month"`
}

type AdminApplicationFilter struct {
	utils.PaginationParams
	Status     models.ApplicationStatus `json:"status,omitempty"`
	CustomerID *uuid.UUID               `json:"customer_id,omitempty"`
}

type RejectApplicationRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func NewAdminService(st *store.Store, notificationService *NotificationService) *AdminService {
	return &AdminService{
		store:               st,
		notificationService: notificationService,
		log:                 logger.WithComponent("admin"),
	}
}

// Dashboard Statistics
func (s *AdminService) GetDashboardStats() *AdminDashboardStats {
	stats := &AdminDashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var disbursed, collected []float64
	for _, app := range s.store.ListApplications(store.ApplicationFilter{}) {
		stats.TotalApplications++
		if !app.AppliedDate.Before(monthStart) {
			stats.ApplicationsThisMonth++
		}

		switch app.Status {
		case models.ApplicationStatusPending:
			stats.PendingApplications++
		case models.ApplicationStatusRejected:
			stats.RejectedApplications++
		case models.ApplicationStatusApproved:
			stats.ApprovedApplications++
			disbursed = append(disbursed, app.Amount)

			for _, p := range s.store.PaymentsForLoan(app.ID) {
				if p.IsCompleted() {
					collected = append(collected, p.Amount)
				} else {
					stats.FailedPayments++
				}
			}
		}
	}

	stats.TotalDisbursed = money.Sum(disbursed...)
	stats.TotalCollected = money.Sum(collected...)
	return stats
}

func (s *AdminService) GetApplications(filter AdminApplicationFilter) utils.PaginationResult {
	apps := s.store.ListApplications(store.ApplicationFilter{
		CustomerID: filter.CustomerID,
		Status:     filter.Status,
	})
	return utils.Paginate(apps, filter.PaginationParams)
}

func (s *AdminService) ApproveApplication(ctx context.Context, applicationID, adminID uuid.UUID) (*models.LoanApplication, error) {
	app, err := s.store.UpdateApplicationStatus(ctx, applicationID, models.ApplicationStatusApproved, "", adminID)
	if err != nil {
		return nil, err
	}

	s.sendDecisionNotification(app)
	return &app, nil
}

func (s *AdminService) RejectApplication(ctx context.Context, applicationID, adminID uuid.UUID, req *RejectApplicationRequest) (*models.LoanApplication, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = DefaultRejectionReason
	}

	app, err := s.store.UpdateApplicationStatus(ctx, applicationID, models.ApplicationStatusRejected, reason, adminID)
	if err != nil {
		return nil, err
	}

	s.sendDecisionNotification(app)
	return &app, nil
}

func (s *AdminService) sendDecisionNotification(app models.LoanApplication) {
	customer, err := s.store.GetUser(app.CustomerID)
	if err != nil {
		s.log.WithError(err).WithField("application_id", app.ID).Warn("Customer not found for decision notification")
		return
	}

	go func() {
		if err := s.notificationService.SendLoanDecisionNotification(&app, &customer); err != nil {
			s.log.WithError(err).WithField("application_id", app.ID).Warn("Failed to send decision notification")
		}
	}()
}
