// internal/utils/money_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentsFromReais(t *testing.T) {
	assert.Equal(t, int64(3550), CentsFromReais(35.50))
	assert.Equal(t, int64(0), CentsFromReais(0))
	assert.Equal(t, int64(1), CentsFromReais(0.01))
	assert.Equal(t, int64(-1250), CentsFromReais(-12.50))

	// Binary float artifacts must not leak into stored amounts.
	assert.Equal(t, int64(30), CentsFromReais(0.1+0.2))
	assert.Equal(t, int64(2990), CentsFromReais(29.90))
}

func TestReaisFromCents(t *testing.T) {
	assert.Equal(t, 35.50, ReaisFromCents(3550))
	assert.Equal(t, 0.0, ReaisFromCents(0))
	assert.Equal(t, -12.50, ReaisFromCents(-1250))
}
