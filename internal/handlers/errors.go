// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/i18n"
	"github.com/javajoker/loanpro-backend/internal/services"
	"github.com/javajoker/loanpro-backend/internal/store"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

// respondError maps service and store errors onto HTTP responses.
// resource names the not_found translation key prefix.
func respondError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, store.ErrAlreadyDecided):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyLoanAlreadyDecided))
	case errors.Is(err, store.ErrDuplicateUser):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))
	case errors.Is(err, store.ErrDuplicateEmail):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthEmailExists))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrPasswordMismatch):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUserPasswordMismatch), nil)
	case errors.Is(err, services.ErrAccountNotVerified):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyUserNotVerified))
	case errors.Is(err, services.ErrLoanNotActive):
		utils.UnprocessableResponse(c, "LOAN_NOT_ACTIVE", i18n.T(lang, i18n.KeyLoanNotActive))
	case errors.Is(err, services.ErrInstallmentPaid), errors.Is(err, store.ErrDuplicatePayment):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyInstallmentAlreadyPaid))
	case errors.Is(err, services.ErrPaymentInProgress):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyPaymentPending))
	case errors.Is(err, services.ErrInstallmentNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyInstallmentNotFound), nil)
	case errors.Is(err, services.ErrNothingDue):
		utils.UnprocessableResponse(c, "NOTHING_DUE", i18n.T(lang, i18n.KeyLoanNothingDue))
	case errors.Is(err, services.ErrPaymentFailed):
		utils.PaymentRequiredResponse(c, i18n.T(lang, i18n.KeyPaymentFailed))
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, resource)
		return uuid.Nil, false
	}
	return id, true
}
