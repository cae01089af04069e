// internal/handlers/common_test.go
package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func recordServiceError(resource string, err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondServiceError(c, resource, err)
	return w
}

func TestRespondServiceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"missing rows map to not found", errors.New("product not found"), http.StatusNotFound},
		{"duplicates map to conflict", errors.New("user already exists"), http.StatusConflict},
		{"invalid input maps to bad request", errors.New("invalid pin"), http.StatusBadRequest},
		{"constraint violations map to bad request", errors.New("credit sales require installments between 1 and 12"), http.StatusBadRequest},
		{"unknown errors map to internal", errors.New("database error: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := recordServiceError("product", tc.err)
			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestIDFromQuery(t *testing.T) {
	t.Run("valid uuid", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/?id=7b8e1a52-3a0f-4a8b-9c51-0d8f3f1a2b3c", nil)
		id, ok := idFromQuery(c)
		assert.True(t, ok)
		assert.Equal(t, "7b8e1a52-3a0f-4a8b-9c51-0d8f3f1a2b3c", id.String())
	})

	t.Run("missing id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
		_, ok := idFromQuery(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
