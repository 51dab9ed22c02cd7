package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("Secret123!"))

	assert.NotEqual(t, "Secret123!", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("Secret123!"))
	assert.Error(t, u.CheckPassword("wrong"))
}

func TestUserHelpers(t *testing.T) {
	u := &User{FirstName: "Jane", LastName: "Doe", Role: RoleCustomer}
	assert.Equal(t, "Jane Doe", u.FullName())
	assert.False(t, u.IsAdmin())
	assert.Equal(t, "****XXXX", u.MaskedAccountNumber())

	u.BankAccountNumber = "123456789012"
	assert.Equal(t, "****9012", u.MaskedAccountNumber())

	u.BankAccountNumber = "12"
	assert.Equal(t, "****12", u.MaskedAccountNumber())
}

func TestApplicationStatus(t *testing.T) {
	assert.True(t, ApplicationStatusApproved.IsDecision())
	assert.True(t, ApplicationStatusRejected.IsDecision())
	assert.False(t, ApplicationStatusPending.IsDecision())
	assert.True(t, ApplicationStatusPending.IsValid())
	assert.False(t, ApplicationStatus("cancelled").IsValid())
}

func TestLoanApplicationDueDate(t *testing.T) {
	app := &LoanApplication{AppliedDate: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
	assert.Equal(t, time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC), app.DueDate(1))
	assert.Equal(t, time.Date(2027, 1, 15, 10, 0, 0, 0, time.UTC), app.DueDate(12))
}
