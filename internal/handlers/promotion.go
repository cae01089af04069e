// internal/handlers/promotion.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/i18n"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/services"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type PromotionHandler struct {
	promotionService *services.PromotionService
}

func NewPromotionHandler(promotionService *services.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// GET /promotions
func (h *PromotionHandler) GetPromotions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	promotions, err := h.promotionService.List(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, promotions)
}

// POST /promotions
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	promotion, err := h.promotionService.Create(user.ID, &req)
	if err != nil {
		respondServiceError(c, "promotion", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyPromotionCreated),
		"promotion": promotion,
	})
}

// DELETE /promotions?id=
func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := idFromQuery(c)
	if !ok {
		return
	}

	if err := h.promotionService.Delete(user.ID, id); err != nil {
		respondServiceError(c, "promotion", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPromotionDeleted),
	})
}
