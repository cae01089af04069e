// internal/handlers/billing.go
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/services"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

const webhookMaxBodyBytes = 65536

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// POST /stripe/create-checkout
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	var req services.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	session, err := h.billingService.CreateCheckoutSession(&req)
	if err != nil {
		respondServiceError(c, "subscription", err)
		return
	}
	utils.SuccessResponse(c, session)
}

// POST /stripe/create-portal
func (h *BillingHandler) CreatePortal(c *gin.Context) {
	var req services.CreatePortalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	url, err := h.billingService.CreatePortalSession(&req)
	if err != nil {
		respondServiceError(c, "subscription", err)
		return
	}
	utils.SuccessResponse(c, gin.H{"url": url})
}

// POST /stripe/update-subscription
func (h *BillingHandler) UpdateSubscription(c *gin.Context) {
	var req services.UpdateStripeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if err := h.billingService.UpdateSubscriptionPlan(&req); err != nil {
		respondServiceError(c, "subscription", err)
		return
	}
	utils.SuccessResponse(c, gin.H{"updated": true})
}

// GET /stripe/verify-session?session_id=
func (h *BillingHandler) VerifySession(c *gin.Context) {
	result, err := h.billingService.VerifySession(c.Query("session_id"))
	if err != nil {
		respondServiceError(c, "subscription", err)
		return
	}
	utils.SuccessResponse(c, result)
}

// POST /stripe/webhook
//
// Non-2xx responses make the processor retry the event, which is what we
// want for transient failures; handlers are idempotent for that reason.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookMaxBodyBytes))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.billingService.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		logrus.WithError(err).Error("Webhook processing failed")
		c.Status(http.StatusBadRequest)
		return
	}

	c.Status(http.StatusOK)
}
