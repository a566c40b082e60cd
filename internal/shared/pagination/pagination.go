package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const DefaultPerPage = 15

// Page is a 1-based page request.
type Page struct {
	Number  int
	PerPage int
}

// FromQuery reads ?page= from the request. Missing or invalid values mean page 1.
func FromQuery(c *gin.Context, perPage int) Page {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		n = 1
	}
	return New(n, perPage)
}

func New(number, perPage int) Page {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	// keeps the offset within int32 for every driver
	if limit := math.MaxInt32 / perPage; number > limit {
		number = limit
	}
	return Page{Number: number, PerPage: perPage}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Scope applies LIMIT/OFFSET to a gorm query.
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.PerPage)
}

// Meta is the pagination block rendered next to a list.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

func NewMeta(p Page, total int64) Meta {
	last := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if last < 1 {
		last = 1
	}
	return Meta{
		CurrentPage: p.Number,
		PerPage:     p.PerPage,
		Total:       total,
		LastPage:    last,
	}
}
