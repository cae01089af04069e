// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
//
// Status values stay in pt-BR: they are stored verbatim and displayed
// verbatim by the clients.

type EntityStatus string

const (
	EntityStatusAtivo   EntityStatus = "Ativo"
	EntityStatusInativo EntityStatus = "Inativo"
)

type SaleStatus string

const (
	SaleStatusConcluida SaleStatus = "Concluída"
	SaleStatusPendente  SaleStatus = "Pendente"
	SaleStatusCancelada SaleStatus = "Cancelada"
)

type PaymentMethod string

const (
	PaymentMethodDinheiro PaymentMethod = "Dinheiro"
	PaymentMethodPix      PaymentMethod = "Pix"
	PaymentMethodDebito   PaymentMethod = "Débito"
	PaymentMethodCredito  PaymentMethod = "Crédito"
	PaymentMethodFiado    PaymentMethod = "Fiado"
)

type PromotionStatus string

const (
	PromotionStatusAtiva    PromotionStatus = "Ativa"
	PromotionStatusAgendada PromotionStatus = "Agendada"
	PromotionStatusExpirada PromotionStatus = "Expirada"
)

type PromotionItemType string

const (
	PromotionItemProduct PromotionItemType = "product"
	PromotionItemService PromotionItemType = "service"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "TRIAL"
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "MONTHLY"
	BillingCycleYearly  BillingCycle = "YEARLY"
)

type CommissionStatus string

const (
	CommissionStatusPending   CommissionStatus = "PENDING"
	CommissionStatusPaid      CommissionStatus = "PAID"
	CommissionStatusCancelled CommissionStatus = "CANCELLED"
)

type TransactionType string

const (
	TransactionTypeReceita TransactionType = "Receita"
	TransactionTypeDespesa TransactionType = "Despesa"
)
