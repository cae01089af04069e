// internal/models/audit.go
package models

import (
	"github.com/google/uuid"
)

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"userId,omitempty" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resourceType" gorm:"size:100"`
	ResourceID   *uuid.UUID `json:"resourceId,omitempty" gorm:"type:uuid"`
	IPAddress    string     `json:"ipAddress" gorm:"size:45"`
	UserAgent    string     `json:"userAgent" gorm:"size:500"`
	NewValues    JSONB      `json:"newValues,omitempty" gorm:"type:jsonb"`
}
