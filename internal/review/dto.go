package review

import (
	"time"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

type ReviewRequest struct {
	Score   int    `json:"score" form:"score" binding:"required,min=1,max=5"`
	Content string `json:"content" form:"content" binding:"required,notblank"`
}

type ReviewResponse struct {
	ID           uint32    `json:"id"`
	RestaurantID uint32    `json:"restaurant_id"`
	Score        int       `json:"score"`
	Content      string    `json:"content"`
	MemberID     uint32    `json:"member_id"`
	MemberName   string    `json:"member_name,omitempty"`
	IsOwn        bool      `json:"is_own"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListResponse struct {
	RestaurantID   uint32           `json:"restaurant_id"`
	RestaurantName string           `json:"restaurant_name"`
	Reviews        []ReviewResponse `json:"reviews"`
	Meta           pagination.Meta  `json:"meta"`
	handler.Flash
}

type EditResponse struct {
	Review ReviewResponse `json:"review"`
	handler.Flash
}

func newReviewResponse(r model.Review, viewerID uint32) ReviewResponse {
	resp := ReviewResponse{
		ID:           r.ID,
		RestaurantID: r.RestaurantID,
		Score:        r.Score,
		Content:      r.Content,
		MemberID:     r.MemberID,
		IsOwn:        viewerID != 0 && r.MemberID == viewerID,
		CreatedAt:    r.CreatedAt,
	}
	if r.Member != nil {
		resp.MemberName = r.Member.Name
	}
	return resp
}
