// internal/middleware/i18n_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func resolveLang(t *testing.T, header string) string {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(I18nMiddleware())

	var lang string
	r.GET("/", func(c *gin.Context) {
		lang = c.GetString("lang")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Accept-Language", header)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return lang
}

func TestI18nMiddleware(t *testing.T) {
	assert.Equal(t, "pt_BR", resolveLang(t, ""))
	assert.Equal(t, "pt_BR", resolveLang(t, "pt-BR,pt;q=0.9,en;q=0.8"))
	assert.Equal(t, "pt_BR", resolveLang(t, "pt"))
	assert.Equal(t, "en", resolveLang(t, "en-US,en;q=0.9"))
	assert.Equal(t, "en", resolveLang(t, "en"))
	assert.Equal(t, "pt_BR", resolveLang(t, "fr-FR"))
}
