// internal/handlers/finance.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/i18n"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/services"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type FinanceHandler struct {
	financeService *services.FinanceService
}

func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// GET /financial-transactions
func (h *FinanceHandler) GetTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	transactions, err := h.financeService.List(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, transactions)
}

// POST /financial-transactions
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	transaction, err := h.financeService.Create(user.ID, &req)
	if err != nil {
		respondServiceError(c, "transaction", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyTransactionCreated),
		"transaction": transaction,
	})
}

// DELETE /financial-transactions?id=
func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
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

	if err := h.financeService.Delete(user.ID, id); err != nil {
		respondServiceError(c, "transaction", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTransactionDeleted),
	})
}
