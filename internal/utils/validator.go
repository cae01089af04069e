// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("pos_pin", validatePosPin)
	validate.RegisterValidation("payment_method", validatePaymentMethod)
	validate.RegisterValidation("billing_cycle", validateBillingCycle)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validatePosPin accepts exactly four digits, the till-code format used
// for collaborator PINs.
func validatePosPin(fl validator.FieldLevel) bool {
	return pinPattern.MatchString(fl.Field().String())
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Dinheiro", "Pix", "Débito", "Crédito", "Fiado":
		return true
	}
	return false
}

func validateBillingCycle(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "MONTHLY", "YEARLY":
		return true
	}
	return false
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "pos_pin":
		return "PIN must be exactly 4 digits"
	case "payment_method":
		return "Unknown payment method"
	case "billing_cycle":
		return "Billing cycle must be MONTHLY or YEARLY"
	default:
		return e.Field() + " is invalid"
	}
}
