// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/i18n"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/services"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, stats)
}

// POST /admin/approve-commission
func (h *AdminHandler) ApproveCommission(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ApproveCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	commission, err := h.adminService.ApproveCommission(&req)
	if err != nil {
		respondServiceError(c, "referral", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAdminCommissionApproved),
		"commission": commission,
	})
}

// POST /admin/grant-access
func (h *AdminHandler) GrantAccess(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	user, err := h.adminService.GrantAccess(&req)
	if err != nil {
		respondServiceError(c, "auth", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminAccessGranted),
		"user":    user,
	})
}

// POST /admin/reset-subscription
func (h *AdminHandler) ResetSubscription(c *gin.Context) {
	var req services.ResetSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if err := h.adminService.ResetSubscription(&req); err != nil {
		respondServiceError(c, "subscription", err)
		return
	}

	utils.SuccessResponse(c, gin.H{"reset": true})
}

// POST /admin/cleanup-subscriptions
func (h *AdminHandler) CleanupSubscriptions(c *gin.Context) {
	report, err := h.adminService.CleanupSubscriptions()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, report)
}
