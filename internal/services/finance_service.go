// internal/services/finance_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type FinanceService struct {
	db *gorm.DB
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{db: db}
}

type CreateTransactionRequest struct {
	Description string                 `json:"description" validate:"required,min=1,max=500"`
	Amount      *float64               `json:"amount,omitempty"`
	AmountCents *int64                 `json:"amountCents,omitempty"`
	Type        models.TransactionType `json:"type" validate:"required"`
	Date        *time.Time             `json:"date,omitempty"`
}

// TransactionView is the wire shape for a ledger row: the stored cents plus
// the decimal amount clients display.
type TransactionView struct {
	models.FinancialTransaction
	Amount float64 `json:"amount"`
}

func (s *FinanceService) List(userID uuid.UUID) ([]TransactionView, error) {
	var rows []models.FinancialTransaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	views := make([]TransactionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, TransactionView{
			FinancialTransaction: row,
			Amount:               utils.ReaisFromCents(row.AmountCents),
		})
	}
	return views, nil
}

// Create normalizes the amount to cents and applies the sign by type:
// Despesa rows are stored negative, Receita rows positive.
func (s *FinanceService) Create(userID uuid.UUID, req *CreateTransactionRequest) (*TransactionView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	switch req.Type {
	case models.TransactionTypeReceita, models.TransactionTypeDespesa:
	default:
		return nil, errors.New("unknown transaction type")
	}

	var cents int64
	switch {
	case req.AmountCents != nil:
		cents = *req.AmountCents
	case req.Amount != nil:
		cents = utils.CentsFromReais(*req.Amount)
	default:
		return nil, errors.New("amount is required")
	}

	cents = int64(math.Abs(float64(cents)))
	if req.Type == models.TransactionTypeDespesa {
		cents = -cents
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	row := &models.FinancialTransaction{
		UserID:      userID,
		Description: strings.TrimSpace(req.Description),
		AmountCents: cents,
		Type:        req.Type,
		Date:        date,
	}

	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &TransactionView{
		FinancialTransaction: *row,
		Amount:               utils.ReaisFromCents(row.AmountCents),
	}, nil
}

func (s *FinanceService) Delete(userID, id uuid.UUID) error {
	var row models.FinancialTransaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("transaction not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&row).Error; err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
