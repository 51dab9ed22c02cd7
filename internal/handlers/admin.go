// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/loanpro-backend/internal/i18n"
	"github.com/javajoker/loanpro-backend/internal/models"
	"github.com/javajoker/loanpro-backend/internal/services"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"stats": h.adminService.GetDashboardStats(),
	})
}

// GET /admin/applications
func (h *AdminHandler) GetApplications(c *gin.Context) {
	filter := services.AdminApplicationFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if status := c.Query("status"); status != "" {
		appStatus := models.ApplicationStatus(status)
		if !appStatus.IsValid() {
			utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "status"), nil)
			return
		}
		filter.Status = appStatus
	}

	if customerID := c.Query("customer_id"); customerID != "" {
		if id, err := uuid.Parse(customerID); err == nil {
			filter.CustomerID = &id
		}
	}

	utils.PaginatedResponse(c, h.adminService.GetApplications(filter))
}

// PUT /admin/applications/:id/approve
func (h *AdminHandler) ApproveApplication(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	applicationID, ok := pathID(c, "loan")
	if !ok {
		return
	}

	app, err := h.adminService.ApproveApplication(c.Request.Context(), applicationID, adminID)
	if err != nil {
		respondError(c, err, "loan")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(utils.GetLangFromContext(c), i18n.KeyLoanApproved),
		"application": app,
	})
}

// PUT /admin/applications/:id/reject
func (h *AdminHandler) RejectApplication(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	applicationID, ok := pathID(c, "loan")
	if !ok {
		return
	}

	var req services.RejectApplicationRequest
	// An empty body rejects with the default reason.
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	app, err := h.adminService.RejectApplication(c.Request.Context(), applicationID, adminID, &req)
	if err != nil {
		respondError(c, err, "loan")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(utils.GetLangFromContext(c), i18n.KeyLoanRejected),
		"application": app,
	})
}
