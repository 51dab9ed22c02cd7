// internal/services/repayment_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/logger"
	"github.com/javajoker/loanpro-backend/internal/models"
	"github.com/javajoker/loanpro-backend/internal/money"
	"github.com/javajoker/loanpro-backend/internal/store"
)

type RepaymentService struct {
	store               *store.Store
	gateway             PaymentGateway
	notificationService *NotificationService
	currency            string
	now                 func() time.Time
	log                 *logrus.Entry

	// loans with a charge in flight
	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

type PayInstallmentRequest struct {
	Month int `json:"month" validate:"required,gte=1"`
}

type RepaymentResult struct {
	Loan         models.LoanApplication `json:"loan"`
	Payments     []models.LoanPayment   `json:"payments"`
	AmountPaid   float64                `json:"amount_paid"`
	Reference    string                 `json:"reference"`
	Installments []models.Installment   `json:"installments"`
}

type RepaymentSummary struct {
	LoanID               uuid.UUID           `json:"loan_id"`
	EMI                  float64             `json:"emi"`
	TotalInstallments    int                 `json:"total_installments"`
	PaidInstallments     int                 `json:"paid_installments"`
	OverdueInstallments  int                 `json:"overdue_installments"`
	PaidAmount           float64             `json:"paid_amount"`
	RemainingAmount      float64             `json:"remaining_amount"`
	OutstandingPrincipal float64             `json:"outstanding_principal"`
	NextDue              *models.Installment `json:"next_due"`
}

func NewRepaymentService(st *store.Store, gateway PaymentGateway, notificationService *NotificationService, currency string) *RepaymentService {
	return &RepaymentService{
		store:               st,
		gateway:             gateway,
		notificationService: notificationService,
		currency:            currency,
		now:                 time.Now,
		log:                 logger.WithComponent("repayments"),
		inflight:            make(map[uuid.UUID]struct{}),
	}
}

// lock reserves loanID for a single charge at a time. The returned func
// releases it.
func (s *RepaymentService) lock(loanID, customerID uuid.UUID) (func(), error) {
	if _, err := s.store.GetCustomerApplication(loanID, customerID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[loanID]; busy {
		return nil, fmt.Errorf("loan %s: %w", loanID, ErrPaymentInProgress)
	}
	s.inflight[loanID] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inflight, loanID)
		s.mu.Unlock()
	}, nil
}

// activeSchedule loads a customer's approved loan and its current schedule.
func (s *RepaymentService) activeSchedule(loanID, customerID uuid.UUID) (models.LoanApplication, []models.Installment, error) {
	app, err := s.store.GetCustomerApplication(loanID, customerID)
	if err != nil {
		return app, nil, err
	}
	if !app.IsActive() {
		return app, nil, fmt.Errorf("loan %s is %s: %w", app.ID, app.Status, ErrLoanNotActive)
	}
	return app, BuildSchedule(app, s.store.PaymentsForLoan(app.ID), s.now()), nil
}

// PayInstallment charges one unpaid installment.
func (s *RepaymentService) PayInstallment(ctx context.Context, customerID, loanID uuid.UUID, month int) (*RepaymentResult, error) {
	unlock, err := s.lock(loanID, customerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	app, schedule, err := s.activeSchedule(loanID, customerID)
	if err != nil {
		return nil, err
	}
	if month < 1 || month > len(schedule) {
		return nil, fmt.Errorf("month %d of loan %s: %w", month, app.ID, ErrInstallmentNotFound)
	}

	inst := schedule[month-1]
	if inst.IsPaid() {
		return nil, fmt.Errorf("month %d of loan %s: %w", month, app.ID, ErrInstallmentPaid)
	}

	return s.charge(ctx, app, []models.Installment{inst}, fmt.Sprintf("EMI %d of %d", month, app.Duration))
}

// PayInFull settles every unpaid installment, overdue ones included, with a
// single charge.
func (s *RepaymentService) PayInFull(ctx context.Context, customerID, loanID uuid.UUID) (*RepaymentResult, error) {
	unlock, err := s.lock(loanID, customerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	app, schedule, err := s.activeSchedule(loanID, customerID)
	if err != nil {
		return nil, err
	}

	var unpaid []models.Installment
	for _, inst := range schedule {
		if !inst.IsPaid() {
			unpaid = append(unpaid, inst)
		}
	}
	if len(unpaid) == 0 {
		return nil, fmt.Errorf("loan %s: %w", app.ID, ErrNothingDue)
	}

	return s.charge(ctx, app, unpaid, fmt.Sprintf("Full settlement of %d installments", len(unpaid)))
}

func (s *RepaymentService) charge(ctx context.Context, app models.LoanApplication, installments []models.Installment, description string) (*RepaymentResult, error) {
	amounts := make([]float64, 0, len(installments))
	for _, inst := range installments {
		amounts = append(amounts, inst.EMI)
	}
	total := money.Sum(amounts...)

	entry := s.log.WithFields(logrus.Fields{
		"loan_id":      app.ID,
		"installments": len(installments),
		"amount":       total,
	})

	result, err := s.gateway.Charge(ctx, ChargeRequest{
		LoanID:      app.ID,
		CustomerID:  app.CustomerID,
		Amount:      total,
		Currency:    s.currency,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("payment processing interrupted: %w", err)
	}

	if !result.Approved {
		month := models.FullSettlementMonth
		if len(installments) == 1 {
			month = installments[0].Month
		}
		failed := models.LoanPayment{
			LoanID:        app.ID,
			EMIMonth:      month,
			Amount:        total,
			PaymentDate:   result.ProcessedAt,
			Status:        models.PaymentStatusFailed,
			Reference:     result.Reference,
			FailureReason: result.Message,
		}
		if _, err := s.store.AddPayment(ctx, failed); err != nil {
			entry.WithError(err).Error("Failed to record declined payment")
		}
		entry.WithField("reference", result.Reference).Warn("Payment declined")
		return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, result.Message)
	}

	payments := make([]models.LoanPayment, 0, len(installments))
	for _, inst := range installments {
		payments = append(payments, models.LoanPayment{
			LoanID:           app.ID,
			EMIMonth:         inst.Month,
			Amount:           inst.EMI,
			Principal:        inst.Principal,
			Interest:         inst.Interest,
			RemainingBalance: inst.Balance,
			PaymentDate:      result.ProcessedAt,
			Status:           models.PaymentStatusCompleted,
			Reference:        result.Reference,
		})
	}

	recorded, err := s.store.AddPayments(ctx, payments)
	if err != nil {
		if errors.Is(err, store.ErrDuplicatePayment) {
			return nil, fmt.Errorf("%w: %v", ErrInstallmentPaid, err)
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	entry.WithField("reference", result.Reference).Info("Payment completed")
	s.sendReceipt(app, recorded, total)

	return &RepaymentResult{
		Loan:         app,
		Payments:     recorded,
		AmountPaid:   total,
		Reference:    result.Reference,
		Installments: BuildSchedule(app, s.store.PaymentsForLoan(app.ID), s.now()),
	}, nil
}

func (s *RepaymentService) Summary(customerID, loanID uuid.UUID) (*RepaymentSummary, error) {
	app, err := s.store.GetCustomerApplication(loanID, customerID)
	if err != nil {
		return nil, err
	}

	schedule := BuildSchedule(app, s.store.PaymentsForLoan(app.ID), s.now())
	summary := &RepaymentSummary{
		LoanID:               app.ID,
		EMI:                  app.EMI,
		TotalInstallments:    len(schedule),
		OutstandingPrincipal: OutstandingPrincipal(app, schedule),
	}

	var paid, remaining []float64
	for _, inst := range schedule {
		switch inst.Status {
		case models.InstallmentStatusPaid:
			summary.PaidInstallments++
			paid = append(paid, inst.EMI)
			continue
		case models.InstallmentStatusOverdue:
			summary.OverdueInstallments++
		}
		remaining = append(remaining, inst.EMI)
	}
	summary.PaidAmount = money.Sum(paid...)
	summary.RemainingAmount = money.Sum(remaining...)

	if app.IsActive() {
		summary.NextDue = NextUnpaid(schedule)
	}
	return summary, nil
}

func (s *RepaymentService) sendReceipt(app models.LoanApplication, payments []models.LoanPayment, total float64) {
	customer, err := s.store.GetUser(app.CustomerID)
	if err != nil {
		s.log.WithError(err).WithField("loan_id", app.ID).Warn("Customer not found for payment receipt")
		return
	}

	go func() {
		if err := s.notificationService.SendPaymentReceipt(&app, &customer, payments, total); err != nil {
			s.log.WithError(err).WithField("loan_id", app.ID).Warn("Failed to send payment receipt")
		}
	}()
}
