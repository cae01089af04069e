// internal/utils/pagination_test.go
package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(url string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := paramsFor("/")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 50, p.Limit)
		assert.Equal(t, "created_at", p.Sort)
		assert.Equal(t, "desc", p.Order)
	})

	t.Run("explicit values", func(t *testing.T) {
		p := paramsFor("/?page=3&limit=25&sort=total_cents&order=asc")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 25, p.Limit)
		assert.Equal(t, "total_cents", p.Sort)
		assert.Equal(t, "asc", p.Order)
	})

	t.Run("out of range values fall back", func(t *testing.T) {
		p := paramsFor("/?page=0&limit=9999&order=sideways")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 50, p.Limit)
		assert.Equal(t, "desc", p.Order)
	})
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]string{"a", "b"}, 101, PaginationParams{Page: 2, Limit: 50})
	assert.Equal(t, int64(101), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
}
