// internal/models/loan.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// LoanApplication is created on submission and has its status decided once.
type LoanApplication struct {
	BaseModel
	CustomerID    uuid.UUID         `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	AccountNumber string            `json:"account_number"`
	Purpose       string            `json:"purpose"`
	Amount        float64           `json:"amount"`
	Duration      int               `json:"duration"` // months
	InterestRate  float64           `json:"interest_rate"`
	EMI           float64           `json:"emi"`
	Status        ApplicationStatus `json:"status"`
	AppliedDate   time.Time         `json:"applied_date"`
	Reason        string            `json:"reason,omitempty"`
	DecidedAt     *time.Time        `json:"decided_at,omitempty"`
	DecidedBy     *uuid.UUID        `json:"decided_by,omitempty"`
}

func (a *LoanApplication) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

func (a *LoanApplication) IsActive() bool {
	return a.Status == ApplicationStatusApproved
}

// DueDate is the applied date shifted by month calendar months.
func (a *LoanApplication) DueDate(month int) time.Time {
	return a.AppliedDate.AddDate(0, month, 0)
}

// FullSettlementMonth marks a payment attempt covering every unpaid installment.
const FullSettlementMonth = 0

// LoanPayment is a recorded repayment attempt.
type LoanPayment struct {
	ID               uuid.UUID     `json:"id"`
	LoanID           uuid.UUID     `json:"loan_id"`
	EMIMonth         int           `json:"emi_month"`
	Amount           float64       `json:"amount"`
	Principal        float64       `json:"principal"`
	Interest         float64       `json:"interest"`
	RemainingBalance float64       `json:"remaining_balance"`
	PaymentDate      time.Time     `json:"payment_date"`
	Status           PaymentStatus `json:"status"`
	Reference        string        `json:"reference,omitempty"`
	FailureReason    string        `json:"failure_reason,omitempty"`
}

func (p *LoanPayment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

// Installment is one row of a loan's repayment schedule.
type Installment struct {
	Month       int               `json:"month"`
	DueDate     time.Time         `json:"due_date"`
	PaymentDate *time.Time        `json:"payment_date"`
	EMI         float64           `json:"emi"`
	Principal   float64           `json:"principal"`
	Interest    float64           `json:"interest"`
	Balance     float64           `json:"balance"`
	Status      InstallmentStatus `json:"status"`
}

func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}
