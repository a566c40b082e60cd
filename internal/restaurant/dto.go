package restaurant

import (
	"math"
	"time"

	"github.com/nagoyameshi/go-api-server/internal/category"
	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

// SearchRequest is the public catalog query string.
type SearchRequest struct {
	Keyword    string `form:"keyword" binding:"omitempty,max=255"`
	CategoryID uint32 `form:"category_id"`
	Price      int    `form:"price" binding:"omitempty,min=0"`
	Sort       string `form:"sort" binding:"omitempty,oneof=rating popular lowest_price created_at"`
	Direction  string `form:"direction" binding:"omitempty,oneof=asc desc"`
}

func (r SearchRequest) Filter() Filter {
	filter := Filter{
		Keyword:    r.Keyword,
		CategoryID: r.CategoryID,
		MaxPrice:   r.Price,
		Sort:       r.Sort,
		Descending: r.Direction != "asc",
	}
	if filter.Sort == "" {
		filter.Sort = SortCreatedAt
	}
	return filter
}

// RestaurantRequest is the admin create/update form. The image travels as a
// separate multipart file.
type RestaurantRequest struct {
	Name              string   `json:"name" form:"name" binding:"required,max=255"`
	Description       string   `json:"description" form:"description" binding:"required"`
	LowestPrice       *int     `json:"lowest_price" form:"lowest_price" binding:"required,min=0"`
	HighestPrice      *int     `json:"highest_price" form:"highest_price" binding:"required,min=0"`
	PostalCode        string   `json:"postal_code" form:"postal_code" binding:"required,postal_code"`
	Address           string   `json:"address" form:"address" binding:"required,max=255"`
	OpeningTime       string   `json:"opening_time" form:"opening_time" binding:"required,time_hm"`
	ClosingTime       string   `json:"closing_time" form:"closing_time" binding:"required,time_hm"`
	SeatingCapacity   *int     `json:"seating_capacity" form:"seating_capacity" binding:"required,min=0"`
	CategoryIDs       []uint32 `json:"category_ids" form:"category_ids" binding:"max=3,dive,min=1"`
	RegularHolidayIDs []uint32 `json:"regular_holiday_ids" form:"regular_holiday_ids" binding:"dive,min=1"`
}

type HolidayResponse struct {
	ID    uint32 `json:"id"`
	Day   string `json:"day"`
	Value *int   `json:"value"`
}

type RestaurantResponse struct {
	ID               uint32                      `json:"id"`
	Name             string                      `json:"name"`
	ImageURL         string                      `json:"image_url"`
	Description      string                      `json:"description"`
	LowestPrice      int                         `json:"lowest_price"`
	HighestPrice     int                         `json:"highest_price"`
	PostalCode       string                      `json:"postal_code"`
	Address          string                      `json:"address"`
	OpeningTime      string                      `json:"opening_time"`
	ClosingTime      string                      `json:"closing_time"`
	SeatingCapacity  int                         `json:"seating_capacity"`
	AverageScore     *float64                    `json:"average_score"`
	ReservationCount int64                       `json:"reservation_count"`
	Categories       []category.CategoryResponse `json:"categories"`
	RegularHolidays  []HolidayResponse           `json:"regular_holidays,omitempty"`
	CreatedAt        time.Time                   `json:"created_at"`
}

type HomeResponse struct {
	HighlyRated []RestaurantResponse        `json:"highly_rated_restaurants"`
	New         []RestaurantResponse        `json:"new_restaurants"`
	Popular     []RestaurantResponse        `json:"popular_restaurants"`
	Categories  []category.CategoryResponse `json:"categories"`
	handler.Flash
}

type ListResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	Meta        pagination.Meta      `json:"meta"`
	Keyword     string               `json:"keyword,omitempty"`
	CategoryID  uint32               `json:"category_id,omitempty"`
	Price       int                  `json:"price,omitempty"`
	Sort        string               `json:"sort"`
	Direction   string               `json:"direction"`
	handler.Flash
}

type DetailResponse struct {
	Restaurant  RestaurantResponse `json:"restaurant"`
	IsFavorited bool               `json:"is_favorited"`
	handler.Flash
}

type HolidayListResponse struct {
	RegularHolidays []HolidayResponse `json:"regular_holidays"`
}

// ImportRowError describes one spreadsheet row that was skipped.
type ImportRowError struct {
	Row    int               `json:"row"`
	Errors map[string]string `json:"errors"`
}

type ImportResponse struct {
	Imported int              `json:"imported"`
	Skipped  []ImportRowError `json:"skipped"`
}

func NewHolidayResponses(holidays []model.RegularHoliday) []HolidayResponse {
	responses := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, HolidayResponse{ID: h.ID, Day: h.Day, Value: h.Value})
	}
	return responses
}

func newRestaurantResponse(row Row, imageURL string, categories []model.Category) RestaurantResponse {
	r := row.Restaurant
	resp := RestaurantResponse{
		ID:               r.ID,
		Name:             r.Name,
		ImageURL:         imageURL,
		Description:      r.Description,
		LowestPrice:      r.LowestPrice,
		HighestPrice:     r.HighestPrice,
		PostalCode:       r.PostalCode,
		Address:          r.Address,
		OpeningTime:      r.OpeningTime,
		ClosingTime:      r.ClosingTime,
		SeatingCapacity:  r.SeatingCapacity,
		ReservationCount: row.ReservationCount,
		Categories:       category.NewCategoryResponses(categories),
		CreatedAt:        r.CreatedAt,
	}
	if row.AverageScore != nil {
		score := math.Round(*row.AverageScore*10) / 10
		resp.AverageScore = &score
	}
	return resp
}
