// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthEmailExists        = "auth.email_exists"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthCustomerOnly       = "auth.customer_only"

	// User Management
	KeyUserProfileUpdated   = "user.profile_updated"
	KeyUserNotFound         = "user.not_found"
	KeyUserPasswordChanged  = "user.password_changed"
	KeyUserPasswordMismatch = "user.password_mismatch"
	KeyUserAccountLinked    = "user.account_linked"
	KeyUserNotVerified      = "user.not_verified"

	// Loans
	KeyLoanNotFound           = "loan.not_found"
	KeyLoanSubmitted          = "loan.submitted"
	KeyLoanApproved           = "loan.approved"
	KeyLoanRejected           = "loan.rejected"
	KeyLoanAlreadyDecided     = "loan.already_decided"
	KeyLoanNotActive          = "loan.not_active"
	KeyInstallmentNotFound    = "loan.installment_not_found"
	KeyInstallmentAlreadyPaid = "loan.installment_paid"
	KeyLoanNothingDue         = "loan.nothing_due"

	// Payments
	KeyPaymentSuccess = "payment.success"
	KeyPaymentFailed  = "payment.failed"
	KeyPaymentPending = "payment.in_progress"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Rate limiting
	KeyRateLimited = "rate_limit.exceeded"
)
