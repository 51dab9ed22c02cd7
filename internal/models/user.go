// internal/models/user.go
package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username          string     `json:"username"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Role              Role       `json:"role"`
	AccountVerified   bool       `json:"account_verified"`
	BankAccountNumber string     `json:"bank_account_number,omitempty"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MaskedAccountNumber keeps only the last four digits.
func (u *User) MaskedAccountNumber() string {
	n := len(u.BankAccountNumber)
	if n == 0 {
		return "****XXXX"
	}
	if n <= 4 {
		return "****" + u.BankAccountNumber
	}
	return "****" + u.BankAccountNumber[n-4:]
}
