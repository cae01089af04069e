// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email           string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name            string     `json:"name" gorm:"size:255;not null"`
	PasswordHash    string     `json:"-" gorm:"size:255"`
	Image           *string    `json:"image,omitempty" gorm:"size:500"`
	OwnerPin        string     `json:"-" gorm:"size:20"`
	IsAdmin         bool       `json:"isAdmin" gorm:"default:false"`
	ReferredBy      *string    `json:"referredBy,omitempty" gorm:"size:20;index"`
	TrialEndsAt     *time.Time `json:"trialEndsAt,omitempty"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`

	// Relationships
	Categories    []Category             `json:"categories,omitempty" gorm:"foreignKey:UserID"`
	Products      []Product              `json:"products,omitempty" gorm:"foreignKey:UserID"`
	Services      []Service              `json:"services,omitempty" gorm:"foreignKey:UserID"`
	Customers     []Customer             `json:"customers,omitempty" gorm:"foreignKey:UserID"`
	Collaborators []Collaborator         `json:"collaborators,omitempty" gorm:"foreignKey:UserID"`
	Sales         []Sale                 `json:"sales,omitempty" gorm:"foreignKey:UserID"`
	Promotions    []Promotion            `json:"promotions,omitempty" gorm:"foreignKey:UserID"`
	Transactions  []FinancialTransaction `json:"transactions,omitempty" gorm:"foreignKey:UserID"`
	Subscription  *Subscription          `json:"subscription,omitempty" gorm:"foreignKey:UserID"`
	Referral      *Referral              `json:"referral,omitempty" gorm:"foreignKey:UserID"`
	Settings      *Settings              `json:"settings,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
