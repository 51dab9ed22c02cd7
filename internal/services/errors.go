package services

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrPasswordMismatch    = errors.New("current password is incorrect")
	ErrAccountNotVerified  = errors.New("bank account must be linked before applying")
	ErrLoanNotActive       = errors.New("loan is not approved")
	ErrInstallmentNotFound = errors.New("installment does not exist")
	ErrInstallmentPaid     = errors.New("installment already paid")
	ErrNothingDue          = errors.New("no unpaid installments")
	ErrPaymentInProgress   = errors.New("another payment for this loan is in progress")

	// ErrPaymentFailed is returned when the gateway declines a charge.
	// The failed attempt is recorded and the caller may retry.
	ErrPaymentFailed = errors.New("payment failed")
)
