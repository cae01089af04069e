// internal/models/customer.go
package models

import (
	"github.com/google/uuid"
)

type Customer struct {
	BaseModel
	UserID   uuid.UUID    `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:uix_customers_user_email"`
	Name     string       `json:"name" gorm:"size:255;not null"`
	Email    string       `json:"email" gorm:"size:255;not null;uniqueIndex:uix_customers_user_email"`
	Phone    *string      `json:"phone,omitempty" gorm:"size:30"`
	AvatarID *string      `json:"avatarId,omitempty" gorm:"size:100"`
	Status   EntityStatus `json:"status" gorm:"type:varchar(10);default:'Ativo'"`
}

// Collaborator is a PIN-gated POS operator identity, distinct from the
// owning account. The PIN stays plain: it is a 4-digit till code the owner
// hands out and can read back, not a credential.
type Collaborator struct {
	BaseModel
	UserID         uuid.UUID    `json:"userId" gorm:"type:uuid;not null;index"`
	Name           string       `json:"name" gorm:"size:255;not null"`
	Pin            string       `json:"pin" gorm:"size:10;not null"`
	CanModifyItems bool         `json:"canModifyItems" gorm:"default:false"`
	AvatarID       *string      `json:"avatarId,omitempty" gorm:"size:100"`
	Status         EntityStatus `json:"status" gorm:"type:varchar(10);default:'Ativo'"`
}
