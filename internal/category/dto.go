package category

import (
	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

type CategoryRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=255"`
}

type CategoryResponse struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

type ListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	handler.Flash
}

type AdminListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Keyword    string             `json:"keyword"`
	Meta       pagination.Meta    `json:"meta"`
	handler.Flash
}

func NewCategoryResponse(c model.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func NewCategoryResponses(categories []model.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, NewCategoryResponse(c))
	}
	return responses
}
