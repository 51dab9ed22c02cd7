// internal/services/payment_service.go
package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/config"
	"github.com/javajoker/loanpro-backend/internal/logger"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

// PaymentGateway charges a customer for a loan repayment.
// A declined charge is reported through ChargeResult, not as an error.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

type ChargeRequest struct {
	LoanID      uuid.UUID
	CustomerID  uuid.UUID
	Amount      float64
	Currency    string
	Description string
}

type ChargeResult struct {
	Reference   string
	Approved    bool
	Message     string
	ProcessedAt time.Time
}

// SimulatedGateway waits a fixed delay and approves a configurable
// fraction of charges.
type SimulatedGateway struct {
	delay       time.Duration
	successRate float64
	random      func() float64
	log         *logrus.Entry
}

type GatewayOption func(*SimulatedGateway)

// WithRandomSource replaces the source of the approval draw.
func WithRandomSource(random func() float64) GatewayOption {
	return func(g *SimulatedGateway) {
		g.random = random
	}
}

func WithDelay(delay time.Duration) GatewayOption {
	return func(g *SimulatedGateway) {
		g.delay = delay
	}
}

func NewSimulatedGateway(cfg config.PaymentConfig, opts ...GatewayOption) *SimulatedGateway {
	g := &SimulatedGateway{
		delay:       time.Duration(cfg.SimulatedDelayMs) * time.Millisecond,
		successRate: cfg.SuccessRate,
		random:      rand.Float64,
		log:         logger.WithComponent("payment_gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid charge amount %v", req.Amount)
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	reference, err := utils.GeneratePaymentReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment reference: %w", err)
	}

	result := &ChargeResult{
		Reference:   reference,
		Approved:    g.random() < g.successRate,
		ProcessedAt: time.Now().UTC(),
	}
	if !result.Approved {
		result.Message = "Payment declined by the processor"
	}

	g.log.WithFields(logrus.Fields{
		"loan_id":   req.LoanID,
		"amount":    req.Amount,
		"reference": reference,
		"approved":  result.Approved,
	}).Info("Charge processed")

	return result, nil
}
