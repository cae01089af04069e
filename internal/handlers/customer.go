// internal/handlers/customer.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/i18n"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/services"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// GET /customers
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	customers, err := h.customerService.ListCustomers(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, customers)
}

// POST /customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(user.ID, &req)
	if err != nil {
		respondServiceError(c, "customer", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCustomerCreated),
		"customer": customer,
	})
}

// PUT /customers (id in body)
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(user.ID, &req)
	if err != nil {
		respondServiceError(c, "customer", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCustomerUpdated),
		"customer": customer,
	})
}

// DELETE /customers?id=
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
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

	if err := h.customerService.DeleteCustomer(user.ID, id); err != nil {
		respondServiceError(c, "customer", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCustomerDeleted),
	})
}

// GET /collaborators
func (h *CustomerHandler) GetCollaborators(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	collaborators, err := h.customerService.ListCollaborators(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, collaborators)
}

// POST /collaborators
func (h *CustomerHandler) CreateCollaborator(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	collaborator, err := h.customerService.CreateCollaborator(user.ID, &req)
	if err != nil {
		respondServiceError(c, "collaborator", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyCollaboratorCreated),
		"collaborator": collaborator,
	})
}

// PUT /collaborators (id in body)
func (h *CustomerHandler) UpdateCollaborator(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	collaborator, err := h.customerService.UpdateCollaborator(user.ID, &req)
	if err != nil {
		respondServiceError(c, "collaborator", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyCollaboratorUpdated),
		"collaborator": collaborator,
	})
}

// DELETE /collaborators?id=
func (h *CustomerHandler) DeleteCollaborator(c *gin.Context) {
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

	if err := h.customerService.DeleteCollaborator(user.ID, id); err != nil {
		respondServiceError(c, "collaborator", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCollaboratorDeleted),
	})
}

// POST /collaborators/verify-pin
func (h *CustomerHandler) VerifyPin(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.VerifyPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	result, err := h.customerService.VerifyPin(user, &req)
	if err != nil {
		if err.Error() == "invalid pin" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthPinInvalid))
			return
		}
		respondServiceError(c, "collaborator", err)
		return
	}

	utils.SuccessResponse(c, result)
}
