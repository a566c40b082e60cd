package handler_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/stretchr/testify/assert"
)

func TestBack(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		referer  string
		expected string
	}{
		{"missing", "", "/favorites"},
		{"relative path", "/restaurants/3", "/restaurants/3"},
		{"same host", "http://example.com/restaurants?page=2", "/restaurants?page=2"},
		{"other host", "https://evil.example.net/phish", "/favorites"},
		{"scheme relative", "//evil.example.net/phish", "/favorites"},
		{"javascript", "javascript:alert(1)", "/favorites"},
		{"not a path", "restaurants/3", "/favorites"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("POST", "http://example.com/favorites/3", nil)
			if tt.referer != "" {
				c.Request.Header.Set("Referer", tt.referer)
			}

			assert.Equal(t, tt.expected, handler.Back(c, "/favorites"))
		})
	}
}
