package reservation

import (
	"time"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

// DatetimeLayout is how reserved_datetime is rendered.
const DatetimeLayout = "2006-01-02 15:04"

type CreateReservationRequest struct {
	ReservationDate string `json:"reservation_date" form:"reservation_date" binding:"required,date_ymd"`
	ReservationTime string `json:"reservation_time" form:"reservation_time" binding:"required,time_hm"`
	NumberOfPeople  int    `json:"number_of_people" form:"number_of_people" binding:"required,min=1,max=50"`
}

type RestaurantSummary struct {
	ID              uint32 `json:"id"`
	Name            string `json:"name"`
	ImageURL        string `json:"image_url"`
	Address         string `json:"address"`
	OpeningTime     string `json:"opening_time,omitempty"`
	ClosingTime     string `json:"closing_time,omitempty"`
	SeatingCapacity int    `json:"seating_capacity,omitempty"`
}

type ReservationResponse struct {
	ID               uint32             `json:"id"`
	ReservedDatetime string             `json:"reserved_datetime"`
	NumberOfPeople   int                `json:"number_of_people"`
	Restaurant       *RestaurantSummary `json:"restaurant,omitempty"`
}

type ListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Meta         pagination.Meta       `json:"meta"`
	handler.Flash
}

type CreateFormResponse struct {
	Restaurant RestaurantSummary `json:"restaurant"`
	handler.Flash
}

func newReservationResponse(r model.Reservation, loc *time.Location, imageURL func(string) string) ReservationResponse {
	resp := ReservationResponse{
		ID:               r.ID,
		ReservedDatetime: r.ReservedDatetime.In(loc).Format(DatetimeLayout),
		NumberOfPeople:   r.NumberOfPeople,
	}
	if r.Restaurant != nil {
		resp.Restaurant = &RestaurantSummary{
			ID:       r.Restaurant.ID,
			Name:     r.Restaurant.Name,
			ImageURL: imageURL(r.Restaurant.Image),
			Address:  r.Restaurant.Address,
		}
	}
	return resp
}
