// internal/handlers/subscription.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/i18n"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/services"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	referralService     *services.ReferralService
	settingsService     *services.SettingsService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, referralService *services.ReferralService, settingsService *services.SettingsService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		referralService:     referralService,
		settingsService:     settingsService,
	}
}

// GET /subscriptions
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	subscription, err := h.subscriptionService.GetOrCreate(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, subscription)
}

// PUT /subscriptions
func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	subscription, err := h.subscriptionService.UpdateBillingCycle(user.ID, &req)
	if err != nil {
		respondServiceError(c, "subscription", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeySubscriptionUpdated),
		"subscription": subscription,
	})
}

// GET /referrals
func (h *SubscriptionHandler) GetReferral(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	referral, err := h.referralService.GetOrCreate(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, referral)
}

// GET /settings
func (h *SubscriptionHandler) GetSettings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	settings, err := h.settingsService.GetOrCreate(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, settings)
}

// PUT /settings
func (h *SubscriptionHandler) UpdateSettings(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	settings, err := h.settingsService.Update(user.ID, &req)
	if err != nil {
		respondServiceError(c, "settings", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeySettingsUpdated),
		"settings": settings,
	})
}
