package favorite

import (
	"github.com/nagoyameshi/go-api-server/internal/restaurant"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

type ListResponse struct {
	Restaurants []restaurant.RestaurantResponse `json:"favorite_restaurants"`
	Meta        pagination.Meta                 `json:"meta"`
	handler.Flash
}
