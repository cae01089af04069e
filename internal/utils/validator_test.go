// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pinPayload struct {
	Pin string `validate:"required,pos_pin"`
}

type paymentPayload struct {
	Method string `validate:"required,payment_method"`
}

type cyclePayload struct {
	Cycle string `validate:"required,billing_cycle"`
}

func TestPosPinValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&pinPayload{Pin: "1234"}))
	assert.Error(t, ValidateStruct(&pinPayload{Pin: "123"}))
	assert.Error(t, ValidateStruct(&pinPayload{Pin: "12345"}))
	assert.Error(t, ValidateStruct(&pinPayload{Pin: "12a4"}))
	assert.Error(t, ValidateStruct(&pinPayload{Pin: ""}))
}

func TestPaymentMethodValidation(t *testing.T) {
	for _, method := range []string{"Dinheiro", "Pix", "Débito", "Crédito", "Fiado"} {
		assert.NoError(t, ValidateStruct(&paymentPayload{Method: method}), method)
	}
	assert.Error(t, ValidateStruct(&paymentPayload{Method: "Cheque"}))
	assert.Error(t, ValidateStruct(&paymentPayload{Method: "credito"}))
}

func TestBillingCycleValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&cyclePayload{Cycle: "MONTHLY"}))
	assert.NoError(t, ValidateStruct(&cyclePayload{Cycle: "YEARLY"}))
	assert.Error(t, ValidateStruct(&cyclePayload{Cycle: "WEEKLY"}))
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&pinPayload{Pin: "99"})
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "pin", errs[0].Field)
	assert.Equal(t, "pos_pin", errs[0].Tag)
	assert.Equal(t, "PIN must be exactly 4 digits", errs[0].Message)
}
