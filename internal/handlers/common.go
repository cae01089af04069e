// internal/handlers/common.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

// currentUser returns the actor resolved by the auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("actor")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// idFromQuery parses the ?id= parameter used by the DELETE endpoints.
func idFromQuery(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid or missing id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps a service error onto the response envelope.
// Ownership violations and missing rows both surface as not-found so
// resource existence never leaks across tenants.
func respondServiceError(c *gin.Context, resource string, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		utils.NotFoundResponse(c, resource)
	case strings.Contains(msg, "already exists"):
		utils.ConflictResponse(c, msg)
	case strings.Contains(msg, "validation failed"):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	case strings.Contains(msg, "invalid"):
		utils.BadRequestResponse(c, msg, nil)
	case strings.Contains(msg, "required") ||
		strings.Contains(msg, "cannot") ||
		strings.Contains(msg, "must"):
		utils.BadRequestResponse(c, msg, nil)
	default:
		utils.InternalErrorResponse(c, msg)
	}
}
