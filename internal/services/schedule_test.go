package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/loanpro-backend/internal/config"
	"github.com/javajoker/loanpro-backend/internal/models"
)

func carLoan(status models.ApplicationStatus, applied time.Time) models.LoanApplication {
	return models.LoanApplication{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Amount:       25000,
		InterestRate: 8.5,
		Duration:     60,
		EMI:          513,
		Status:       status,
		AppliedDate:  applied,
	}
}

func TestBuildScheduleStatuses(t *testing.T) {
	applied := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	app := carLoan(models.ApplicationStatusApproved, applied)

	paidAt := time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)
	payments := []models.LoanPayment{
		{LoanID: app.ID, EMIMonth: 1, Status: models.PaymentStatusCompleted, PaymentDate: paidAt},
		{LoanID: app.ID, EMIMonth: 2, Status: models.PaymentStatusFailed},
	}

	schedule := BuildSchedule(app, payments, now)
	require.Len(t, schedule, 60)

	assert.Equal(t, models.InstallmentStatusPaid, schedule[0].Status)
	require.NotNil(t, schedule[0].PaymentDate)
	assert.Equal(t, paidAt, *schedule[0].PaymentDate)

	// a failed attempt does not count as paid
	assert.Equal(t, models.InstallmentStatusOverdue, schedule[1].Status)
	assert.Nil(t, schedule[1].PaymentDate)
	assert.Equal(t, models.InstallmentStatusOverdue, schedule[2].Status)
	assert.Equal(t, time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC), schedule[2].DueDate)

	assert.Equal(t, models.InstallmentStatusPending, schedule[3].Status)
	assert.Equal(t, models.InstallmentStatusPending, schedule[59].Status)
	assert.Equal(t, 0.0, schedule[59].Balance)

	next := NextUnpaid(schedule)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.Month)
	assert.Equal(t, 25000.0-336, OutstandingPrincipal(app, schedule))
}

func TestBuildScheduleForUndecidedLoans(t *testing.T) {
	applied := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []models.ApplicationStatus{models.ApplicationStatusPending, models.ApplicationStatusRejected} {
		app := carLoan(status, applied)
		payments := []models.LoanPayment{{LoanID: app.ID, EMIMonth: 1, Status: models.PaymentStatusCompleted}}

		schedule := BuildSchedule(app, payments, now)
		require.Len(t, schedule, 60)
		for _, inst := range schedule {
			assert.Equal(t, models.InstallmentStatusPending, inst.Status)
		}
		assert.Equal(t, 0.0, OutstandingPrincipal(app, schedule))
	}
}

func TestBuildScheduleDegenerateLoan(t *testing.T) {
	app := carLoan(models.ApplicationStatusApproved, time.Now())
	app.Duration = 0

	schedule := BuildSchedule(app, nil, time.Now())
	assert.NotNil(t, schedule)
	assert.Empty(t, schedule)
	assert.Nil(t, NextUnpaid(schedule))
}

func TestSimulatedGatewayOutcome(t *testing.T) {
	ctx := context.Background()
	cfg := config.PaymentConfig{SimulatedDelayMs: 0, SuccessRate: 0.9}
	req := ChargeRequest{LoanID: uuid.New(), Amount: 513}

	approve := NewSimulatedGateway(cfg, WithRandomSource(func() float64 { return 0.1 }))
	result, err := approve.Charge(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.Regexp(t, `^PAY-[A-Z0-9]{12}$`, result.Reference)

	decline := NewSimulatedGateway(cfg, WithRandomSource(func() float64 { return 0.95 }))
	result, err = decline.Charge(ctx, req)
	require.NoError(t, err)
	assert.False(t, result.Approved)
	assert.NotEmpty(t, result.Message)

	_, err = approve.Charge(ctx, ChargeRequest{Amount: 0})
	assert.Error(t, err)
}

func TestSimulatedGatewayHonorsCancellation(t *testing.T) {
	gateway := NewSimulatedGateway(config.PaymentConfig{SuccessRate: 1}, WithDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gateway.Charge(ctx, ChargeRequest{Amount: 100})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestSimulatedGatewayDelay(t *testing.T) {
	gateway := NewSimulatedGateway(config.PaymentConfig{SimulatedDelayMs: 30, SuccessRate: 1})

	start := time.Now()
	result, err := gateway.Charge(context.Background(), ChargeRequest{Amount: 100})
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestNotificationTemplatesRender(t *testing.T) {
	n := NewNotificationService(testConfig())
	customer := &models.User{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	app := carLoan(models.ApplicationStatusRejected, time.Now())
	app.Purpose = "Car"
	app.Reason = "Insufficient income"

	require.NoError(t, n.SendWelcomeEmail(customer))
	require.NoError(t, n.SendLoanDecisionNotification(&app, customer))
	require.NoError(t, n.SendPaymentReceipt(&app, customer, []models.LoanPayment{
		{EMIMonth: 1, Reference: "PAY-1"},
		{EMIMonth: 2, Reference: "PAY-1"},
	}, 1026))

	sent := n.Sent()
	require.Len(t, sent, 3)
	assert.Equal(t, "Welcome to LoanPro", sent[0].Subject)
	assert.Contains(t, sent[1].Body, "Insufficient income")
	assert.Contains(t, sent[2].Body, "installments 1, 2")
	assert.Contains(t, sent[2].Body, "PAY-1")

	assert.Error(t, n.SendWelcomeEmail(&models.User{}))
}
