package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"missing", "", 1},
		{"valid", "?page=3", 3},
		{"zero", "?page=0", 1},
		{"negative", "?page=-2", 1},
		{"garbage", "?page=abc", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/reservations"+tt.query, nil)

			p := pagination.FromQuery(c, 15)
			assert.Equal(t, tt.expected, p.Number)
			assert.Equal(t, 15, p.PerPage)
		})
	}
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.New(1, 5).Offset())
	assert.Equal(t, 10, pagination.New(3, 5).Offset())
}

func TestPage_HugeNumberDoesNotOverflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/favorites?page=9223372036854775807", nil)

	p := pagination.FromQuery(c, 15)
	assert.Equal(t, math.MaxInt32/15, p.Number)
	assert.GreaterOrEqual(t, p.Offset(), 0)
	assert.Equal(t, p.Number, pagination.NewMeta(p, 3).CurrentPage)
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, 1, pagination.NewMeta(pagination.New(1, 15), 0).LastPage)
	assert.Equal(t, 1, pagination.NewMeta(pagination.New(1, 15), 15).LastPage)
	assert.Equal(t, 2, pagination.NewMeta(pagination.New(1, 15), 16).LastPage)

	meta := pagination.NewMeta(pagination.New(2, 3), 7)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.LastPage)
	assert.Equal(t, int64(7), meta.Total)
}
