// internal/services/loan_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/amortization"
	"github.com/javajoker/loanpro-backend/internal/logger"
	"github.com/javajoker/loanpro-backend/internal/models"
	"github.com/javajoker/loanpro-backend/internal/money"
	"github.com/javajoker/loanpro-backend/internal/store"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

type LoanService struct {
	store *store.Store
	now   func() time.Time
	log   *logrus.Entry
}

type ApplyLoanRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0,lte=10000000"`
	Purpose  string  `json:"purpose" validate:"required,loan_purpose"`
	Duration int     `json:"duration" validate:"required,gte=1,lte=360"`
}

// QuoteRequest prices a loan. InterestRate overrides the purpose's rate.
type QuoteRequest struct {
	Amount       float64 `json:"amount" validate:"required,gt=0,lte=10000000"`
	Purpose      string  `json:"purpose,omitempty"`
	InterestRate float64 `json:"interest_rate,omitempty" validate:"omitempty,gt=0,lte=100"`
	Duration     int     `json:"duration" validate:"required,gte=1,lte=360"`
}

type NextEMI struct {
	LoanID  uuid.UUID `json:"loan_id"`
	Purpose string    `json:"purpose"`
	Month   int       `json:"month"`
	DueDate time.Time `json:"due_date"`
	Amount  float64   `json:"amount"`
	Overdue bool      `json:"overdue"`
}

type CustomerDashboard struct {
	Applications        []models.LoanApplication `json:"applications"`
	TotalApplications   int                      `json:"total_applications"`
	PendingApplications int                      `json:"pending_applications"`
	ActiveLoans         int                      `json:"active_loans"`
	TotalOutstanding    float64                  `json:"total_outstanding"`
	NextEMI             *NextEMI                 `json:"next_emi"`
}

func NewLoanService(st *store.Store) *LoanService {
	return &LoanService{
		store: st,
		now:   time.Now,
		log:   logger.WithComponent("loans"),
	}
}

func (s *LoanService) Products() []amortization.LoanProduct {
	return amortization.Products()
}

func (s *LoanService) Quote(req *QuoteRequest) (*amortization.Quote, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	rate := req.InterestRate
	if rate == 0 {
		rate = amortization.InterestRateFor(req.Purpose)
	}

	quote := amortization.NewQuote(req.Amount, rate, req.Duration)
	return &quote, nil
}

// Apply submits a pending application priced from the purpose's rate.
func (s *LoanService) Apply(ctx context.Context, customerID uuid.UUID, req *ApplyLoanRequest) (*models.LoanApplication, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	customer, err := s.store.GetUser(customerID)
	if err != nil {
		return nil, err
	}
	if !customer.AccountVerified {
		return nil, ErrAccountNotVerified
	}

	rate := amortization.InterestRateFor(req.Purpose)
	amount := money.RoundCents(req.Amount)
	app := models.LoanApplication{
		CustomerID:    customer.ID,
		CustomerName:  customer.FullName(),
		AccountNumber: customer.MaskedAccountNumber(),
		Purpose:       amortization.CanonicalPurpose(req.Purpose),
		Amount:        amount,
		Duration:      req.Duration,
		InterestRate:  rate,
		EMI:           money.RoundUnits(amortization.CalculateEMI(amount, rate, req.Duration)),
		Status:        models.ApplicationStatusPending,
		AppliedDate:   s.now().UTC(),
	}

	created, err := s.store.AddApplication(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"application_id": created.ID,
		"customer_id":    customerID,
		"amount":         created.Amount,
		"purpose":        created.Purpose,
	}).Info("Loan application submitted")
	return &created, nil
}

func (s *LoanService) ListCustomerApplications(customerID uuid.UUID, status models.ApplicationStatus) []models.LoanApplication {
	return s.store.ListApplications(store.ApplicationFilter{CustomerID: &customerID, Status: status})
}

// GetCustomerLoan reports loans owned by other customers as not found.
func (s *LoanService) GetCustomerLoan(loanID, customerID uuid.UUID) (*models.LoanApplication, error) {
	app, err := s.store.GetCustomerApplication(loanID, customerID)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *LoanService) Schedule(loanID, customerID uuid.UUID) ([]models.Installment, error) {
	app, err := s.store.GetCustomerApplication(loanID, customerID)
	if err != nil {
		return nil, err
	}
	return BuildSchedule(app, s.store.PaymentsForLoan(app.ID), s.now()), nil
}

func (s *LoanService) Payments(loanID, customerID uuid.UUID) ([]models.LoanPayment, error) {
	app, err := s.store.GetCustomerApplication(loanID, customerID)
	if err != nil {
		return nil, err
	}
	return s.store.PaymentsForLoan(app.ID), nil
}

func (s *LoanService) CustomerDashboard(customerID uuid.UUID) *CustomerDashboard {
	apps := s.store.ListApplications(store.ApplicationFilter{CustomerID: &customerID})
	now := s.now()

	dashboard := &CustomerDashboard{
		Applications:      apps,
		TotalApplications: len(apps),
	}

	var outstanding []float64
	for i := range apps {
		app := apps[i]
		switch app.Status {
		case models.ApplicationStatusPending:
			dashboard.PendingApplications++
			continue
		case models.ApplicationStatusRejected:
			continue
		}

		dashboard.ActiveLoans++
		schedule := BuildSchedule(app, s.store.PaymentsForLoan(app.ID), now)
		outstanding = append(outstanding, OutstandingPrincipal(app, schedule))

		if next := NextUnpaid(schedule); next != nil {
			if dashboard.NextEMI == nil || next.DueDate.Before(dashboard.NextEMI.DueDate) {
				dashboard.NextEMI = &NextEMI{
					LoanID:  app.ID,
					Purpose: app.Purpose,
					Month:   next.Month,
					DueDate: next.DueDate,
					Amount:  next.EMI,
					Overdue: next.Status == models.InstallmentStatusOverdue,
				}
			}
		}
	}
	dashboard.TotalOutstanding = money.Sum(outstanding...)

	return dashboard
}

// BuildSchedule expands app into installments. Month i is paid when a
// completed payment exists for it, overdue when its due date has passed,
// and pending otherwise. Installments of loans that are not approved are
// always pending.
func BuildSchedule(app models.LoanApplication, payments []models.LoanPayment, now time.Time) []models.Installment {
	periods := amortization.Schedule(app.Amount, app.InterestRate, app.Duration)
	if len(periods) == 0 {
		return []models.Installment{}
	}

	paid := make(map[int]time.Time)
	for _, p := range payments {
		if p.IsCompleted() && p.EMIMonth != models.FullSettlementMonth {
			paid[p.EMIMonth] = p.PaymentDate
		}
	}

	installments := make([]models.Installment, 0, len(periods))
	for _, period := range periods {
		inst := models.Installment{
			Month:     period.Month,
			DueDate:   app.DueDate(period.Month),
			EMI:       period.EMI,
			Principal: period.Principal,
			Interest:  period.Interest,
			Balance:   period.Balance,
			Status:    models.InstallmentStatusPending,
		}

		if app.IsActive() {
			if paidAt, ok := paid[period.Month]; ok {
				inst.Status = models.InstallmentStatusPaid
				inst.PaymentDate = &paidAt
			} else if inst.DueDate.Before(now) {
				inst.Status = models.InstallmentStatusOverdue
			}
		}

		installments = append(installments, inst)
	}
	return installments
}

// NextUnpaid returns the earliest installment that is not paid.
func NextUnpaid(schedule []models.Installment) *models.Installment {
	for i := range schedule {
		if !schedule[i].IsPaid() {
			return &schedule[i]
		}
	}
	return nil
}

// OutstandingPrincipal is the loan amount less the principal of paid
// installments, and zero once nothing remains unpaid.
func OutstandingPrincipal(app models.LoanApplication, schedule []models.Installment) float64 {
	if !app.IsActive() {
		return 0
	}
	if NextUnpaid(schedule) == nil {
		return 0
	}

	var repaid []float64
	for _, inst := range schedule {
		if inst.IsPaid() {
			repaid = append(repaid, inst.Principal)
		}
	}
	return money.NonNegative(money.Sub(app.Amount, money.Sum(repaid...)))
}
