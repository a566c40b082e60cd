package admin

import (
	"time"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

type MemberSearchRequest struct {
	Keyword string `form:"keyword" binding:"max=255"`
}

type DashboardResponse struct {
	MemberCount      int64 `json:"member_count"`
	RestaurantCount  int64 `json:"restaurant_count"`
	CategoryCount    int64 `json:"category_count"`
	ReservationCount int64 `json:"reservation_count"`
	ReviewCount      int64 `json:"review_count"`
	handler.Flash
}

type MemberResponse struct {
	ID          uint32    `json:"id"`
	Name        string    `json:"name"`
	Kana        string    `json:"kana"`
	Email       string    `json:"email"`
	PostalCode  string    `json:"postal_code"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	Birthday    *string   `json:"birthday,omitempty"`
	Occupation  *string   `json:"occupation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
	Keyword string           `json:"keyword"`
	Meta    pagination.Meta  `json:"meta"`
	handler.Flash
}

type MemberDetailResponse struct {
	Member MemberResponse `json:"member"`
	handler.Flash
}

func newMemberResponse(m model.Member) MemberResponse {
	resp := MemberResponse{
		ID:          m.ID,
		Name:        m.Name,
		Kana:        m.Kana,
		Email:       m.Email,
		PostalCode:  m.PostalCode,
		Address:     m.Address,
		PhoneNumber: m.PhoneNumber,
		Occupation:  m.Occupation,
		CreatedAt:   m.CreatedAt,
	}
	if m.Birthday != nil {
		birthday := m.Birthday.Format("2006-01-02")
		resp.Birthday = &birthday
	}
	return resp
}
