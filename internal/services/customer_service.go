// internal/services/customer_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

type CreateCustomerRequest struct {
	Name     string              `json:"name" validate:"required,min=1,max=255"`
	Email    string              `json:"email" validate:"required,email"`
	Phone    *string             `json:"phone,omitempty"`
	AvatarID *string             `json:"avatarId,omitempty"`
	Status   models.EntityStatus `json:"status,omitempty"`
}

type UpdateCustomerRequest struct {
	CreateCustomerRequest
	ID uuid.UUID `json:"id" validate:"required"`
}

type CreateCollaboratorRequest struct {
	Name           string              `json:"name" validate:"required,min=1,max=255"`
	Pin            string              `json:"pin" validate:"required,pos_pin"`
	CanModifyItems bool                `json:"canModifyItems"`
	AvatarID       *string             `json:"avatarId,omitempty"`
	Status         models.EntityStatus `json:"status,omitempty"`
}

type UpdateCollaboratorRequest struct {
	CreateCollaboratorRequest
	ID uuid.UUID `json:"id" validate:"required"`
}

type VerifyPinRequest struct {
	Pin string `json:"pin" validate:"required,min=4"`
}

// VerifyPinResult identifies the POS operator matched by a till PIN: either
// a collaborator row or the owning account itself.
type VerifyPinResult struct {
	IsOwner      bool                 `json:"isOwner"`
	Collaborator *models.Collaborator `json:"collaborator,omitempty"`
	OwnerName    string               `json:"ownerName,omitempty"`
}

// Customers

func (s *CustomerService) ListCustomers(userID uuid.UUID) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) CreateCustomer(userID uuid.UUID, req *CreateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.EntityStatusAtivo
	}

	customer := &models.Customer{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    req.Phone,
		AvatarID: req.AvatarID,
		Status:   status,
	}

	if err := s.db.Create(customer).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("a customer with this email already exists")
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) UpdateCustomer(userID uuid.UUID, req *UpdateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var customer models.Customer
	if err := s.db.Where("id = ? AND user_id = ?", req.ID, userID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("customer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"name":      strings.TrimSpace(req.Name),
		"email":     strings.ToLower(strings.TrimSpace(req.Email)),
		"phone":     req.Phone,
		"avatar_id": req.AvatarID,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := s.db.Model(&customer).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("a customer with this email already exists")
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return &customer, nil
}

func (s *CustomerService) DeleteCustomer(userID, id uuid.UUID) error {
	var customer models.Customer
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("customer not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&customer).Error; err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// Collaborators

func (s *CustomerService) ListCollaborators(userID uuid.UUID) ([]models.Collaborator, error) {
	var collaborators []models.Collaborator
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&collaborators).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch collaborators: %w", err)
	}
	return collaborators, nil
}

func (s *CustomerService) CreateCollaborator(userID uuid.UUID, req *CreateCollaboratorRequest) (*models.Collaborator, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.EntityStatusAtivo
	}

	collaborator := &models.Collaborator{
		UserID:         userID,
		Name:           strings.TrimSpace(req.Name),
		Pin:            req.Pin,
		CanModifyItems: req.CanModifyItems,
		AvatarID:       req.AvatarID,
		Status:         status,
	}

	if err := s.db.Create(collaborator).Error; err != nil {
		return nil, fmt.Errorf("failed to create collaborator: %w", err)
	}
	return collaborator, nil
}

func (s *CustomerService) UpdateCollaborator(userID uuid.UUID, req *UpdateCollaboratorRequest) (*models.Collaborator, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var collaborator models.Collaborator
	if err := s.db.Where("id = ? AND user_id = ?", req.ID, userID).First(&collaborator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("collaborator not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"name":             strings.TrimSpace(req.Name),
		"pin":              req.Pin,
		"can_modify_items": req.CanModifyItems,
		"avatar_id":        req.AvatarID,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := s.db.Model(&collaborator).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update collaborator: %w", err)
	}
	return &collaborator, nil
}

func (s *CustomerService) DeleteCollaborator(userID, id uuid.UUID) error {
	var collaborator models.Collaborator
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&collaborator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("collaborator not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&collaborator).Error; err != nil {
		return fmt.Errorf("failed to delete collaborator: %w", err)
	}
	return nil
}

// VerifyPin resolves a till PIN to an active collaborator, falling back to
// the owner's PIN for seller-mode on the owning account.
func (s *CustomerService) VerifyPin(user *models.User, req *VerifyPinRequest) (*VerifyPinResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var collaborator models.Collaborator
	err := s.db.Where("user_id = ? AND pin = ? AND status = ?",
		user.ID, req.Pin, models.EntityStatusAtivo).First(&collaborator).Error
	if err == nil {
		return &VerifyPinResult{Collaborator: &collaborator}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.OwnerPin != "" && user.OwnerPin == req.Pin {
		return &VerifyPinResult{IsOwner: true, OwnerName: user.Name}, nil
	}

	return nil, errors.New("invalid pin")
}
