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
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got string
	r := gin.New()
	r.Use(I18nMiddleware())
	r.GET("/", func(c *gin.Context) {
		got = c.GetString("lang")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Accept-Language", header)
	}
	r.ServeHTTP(w, req)
	return got
}

func TestI18nMiddlewareLanguageSelection(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header defaults to Indonesian", "", "id"},
		{"plain English", "en", "en"},
		{"regional English", "en-US,en;q=0.9", "en"},
		{"regional Indonesian", "id-ID,id;q=0.9,en;q=0.8", "id"},
		{"legacy Indonesian tag", "in-ID", "id"},
		{"unsupported language falls back", "ja-JP,ja;q=0.9", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLang(t, tt.header))
		})
	}
}
