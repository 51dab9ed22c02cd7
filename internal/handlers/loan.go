// internal/handlers/loan.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/loanpro-backend/internal/i18n"
	"github.com/javajoker/loanpro-backend/internal/models"
	"github.com/javajoker/loanpro-backend/internal/services"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

type LoanHandler struct {
	loanService      *services.LoanService
	repaymentService *services.RepaymentService
}

func NewLoanHandler(loanService *services.LoanService, repaymentService *services.RepaymentService) *LoanHandler {
	return &LoanHandler{
		loanService:      loanService,
		repaymentService: repaymentService,
	}
}

// GET /loan-products
func (h *LoanHandler) GetProducts(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"products": h.loanService.Products(),
	})
}

// POST /loans/quote
func (h *LoanHandler) Quote(c *gin.Context) {
	var req services.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.loanService.Quote(&req)
	if err != nil {
		respondError(c, err, "loan")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"quote": quote,
	})
}

// POST /loans
func (h *LoanHandler) Apply(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ApplyLoanRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.loanService.Apply(c.Request.Context(), customerID, &req)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(utils.GetLangFromContext(c), i18n.KeyLoanSubmitted),
		"application": app,
	})
}

// GET /loans
func (h *LoanHandler) List(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	apps := h.loanService.ListCustomerApplications(customerID, models.ApplicationStatus(c.Query("status")))
	utils.PaginatedResponse(c, utils.Paginate(apps, utils.GetPaginationParams(c)))
}

// GET /loans/dashboard
func (h *LoanHandler) Dashboard(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, gin.H{
		"dashboard": h.loanService.CustomerDashboard(customerID),
	})
}

// GET /loans/:id
func (h *LoanHandler) Get(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	loanID, ok := pathID(c, "loan")
	if !ok {
		return
	}

	loan, err := h.loanService.GetCustomerLoan(loanID, customerID)
	if err != nil {
		respondError(c, err, "loan")
		return
	}

	summary, err := h.repaymentService.Summary(customerID, loanID)
	if err != nil {
		respondError(c, err, "loan")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"loan":    loan,
		"summary": summary,
	})
}

// GET /loans/:id/schedule
func (h *LoanHandler) Schedule(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	loanID, ok := pathID(c, "loan")
	if !ok {
		return
	}

	schedule, err := h.loanService.Schedule(loanID, customerID)
	if err != nil {
		respondError(c, err, "loan")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"installments": schedule,
	})
}

// GET /loans/:id/payments
func (h *LoanHandler) Payments(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	loanID, ok := pathID(c, "loan")
	if !ok {
		return
	}

	payments, err := h.loanService.Payments(loanID, customerID)
	if err != nil {
		respondError(c, err, "loan")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"payments": payments,
	})
}

// POST /loans/:id/repayments
func (h *LoanHandler) PayInstallment(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	loanID, ok := pathID(c, "loan")
	if !ok {
		return
	}

	var req services.PayInstallmentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.repaymentService.PayInstallment(c.Request.Context(), customerID, loanID, req.Month)
	if err != nil {
		respondError(c, err, "loan")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyPaymentSuccess),
		"result":  result,
	})
}

// POST /loans/:id/repayments/full
func (h *LoanHandler) PayInFull(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}
	loanID, ok := pathID(c, "loan")
	if !ok {
		return
	}

	result, err := h.repaymentService.PayInFull(c.Request.Context(), customerID, loanID)
	if err != nil {
		respondError(c, err, "loan")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyPaymentSuccess),
		"result":  result,
	})
}
