// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/i18n"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/services"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	storageService *services.StorageService
}

func NewCatalogHandler(catalogService *services.CatalogService, storageService *services.StorageService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		storageService: storageService,
	}
}

// GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	categories, err := h.catalogService.ListCategories(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, categories)
}

// POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	category, err := h.catalogService.CreateCategory(user.ID, &req)
	if err != nil {
		respondServiceError(c, "category", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCategoryCreated),
		"category": category,
	})
}

// DELETE /categories?id=
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
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

	if err := h.catalogService.DeleteCategory(user.ID, id); err != nil {
		respondServiceError(c, "category", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCategoryDeleted),
	})
}

// GET /products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	products, err := h.catalogService.ListProducts(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, products)
}

// POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	product, err := h.catalogService.CreateProduct(user.ID, &req)
	if err != nil {
		respondServiceError(c, "product", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /products (id in body)
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	product, err := h.catalogService.UpdateProduct(user.ID, &req)
	if err != nil {
		respondServiceError(c, "product", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products?id=
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
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

	if err := h.catalogService.DeleteProduct(user.ID, id); err != nil {
		respondServiceError(c, "product", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// POST /products/upload-image
func (h *CatalogHandler) UploadProductImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	if _, ok := currentUser(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "Missing file", err.Error())
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	result, err := h.storageService.UploadFile(file, header, services.ImageUploadOptions("products"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"upload":  result,
	})
}

// GET /services
func (h *CatalogHandler) GetServices(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	result, err := h.catalogService.ListServices(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, result)
}

// POST /services
func (h *CatalogHandler) CreateService(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	service, err := h.catalogService.CreateService(user.ID, &req)
	if err != nil {
		respondServiceError(c, "service", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyServiceCreated),
		"service": service,
	})
}

// PUT /services (id in body)
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	service, err := h.catalogService.UpdateService(user.ID, &req)
	if err != nil {
		respondServiceError(c, "service", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyServiceUpdated),
		"service": service,
	})
}

// DELETE /services?id=
func (h *CatalogHandler) DeleteService(c *gin.Context) {
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

	if err := h.catalogService.DeleteService(user.ID, id); err != nil {
		respondServiceError(c, "service", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyServiceDeleted),
	})
}
