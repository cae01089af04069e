// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/config"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type AuthService struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, config: cfg}
}

type RegisterRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Name       string  `json:"name" validate:"required,min=1,max=255"`
	Password   string  `json:"password" validate:"required,min=8"`
	ReferredBy *string `json:"referredBy,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"name" validate:"required"`
	Image *string `json:"image,omitempty"`
}

type UpdateOwnerPinRequest struct {
	OwnerPin string `json:"ownerPin" validate:"required,min=4"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates an account with a one-day bootstrap trial window; the
// full trial is granted when the subscription row is lazily created. A
// supplied referral code must resolve to an existing referral.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, errors.New("user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var referredBy *string
	if req.ReferredBy != nil && *req.ReferredBy != "" {
		code := strings.ToUpper(strings.TrimSpace(*req.ReferredBy))
		var referral models.Referral
		if err := s.db.Where("referral_code = ?", code).First(&referral).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("referral code not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		referredBy = &code
	}

	trialEnd := time.Now().AddDate(0, 0, 1)
	user := &models.User{
		Email:       email,
		Name:        strings.TrimSpace(req.Name),
		ReferredBy:  referredBy,
		TrialEndsAt: &trialEnd,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("user already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.respondWithToken(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.PasswordHash == "" || user.CheckPassword(req.Password) != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.respondWithToken(&user)
}

// GoogleLogin upserts the account from a verified identity-provider
// profile.
func (s *AuthService) GoogleLogin(req *GoogleLoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	now := time.Now()

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		trialEnd := now.AddDate(0, 0, 1)
		user = models.User{
			Email:           email,
			Name:            strings.TrimSpace(req.Name),
			Image:           req.Image,
			TrialEndsAt:     &trialEnd,
			EmailVerifiedAt: &now,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return s.respondWithToken(&user)
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"name": strings.TrimSpace(req.Name),
	}
	if req.Image != nil {
		updates["image"] = req.Image
	}
	if user.EmailVerifiedAt == nil {
		updates["email_verified_at"] = now
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.db.Where("email = ?", email).First(&user)
	return s.respondWithToken(&user)
}

func (s *AuthService) GetProfile(user *models.User) (*models.User, error) {
	var full models.User
	if err := s.db.Preload("Subscription").Preload("Settings").
		First(&full, "id = ?", user.ID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &full, nil
}

func (s *AuthService) UpdateOwnerPin(user *models.User, req *UpdateOwnerPinRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.db.Model(user).UpdateColumn("owner_pin", req.OwnerPin).Error; err != nil {
		return fmt.Errorf("failed to update pin: %w", err)
	}
	user.OwnerPin = req.OwnerPin
	return nil
}

func (s *AuthService) respondWithToken(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateJWT(user.ID, user.Email, user.IsAdmin, s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}
