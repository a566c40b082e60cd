package category

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

const (
	adminIndexPath = "/admin/categories"

	categoryCreatedMessage = "カテゴリを登録しました。"
	categoryUpdatedMessage = "カテゴリを編集しました。"
	categoryDeletedMessage = "カテゴリを削除しました。"
)

type CategoryHandler struct {
	categoryService *CategoryService
}

func NewCategoryHandler(categoryService *CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Categories: categories,
		Flash:      handler.TakeFlash(c),
	})
}

func (h *CategoryHandler) AdminIndex(c *gin.Context) {
	page := pagination.FromQuery(c, pagination.DefaultPerPage)

	response, err := h.categoryService.Search(c.Request.Context(), c.Query("keyword"), page)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *CategoryHandler) Store(c *gin.Context) {
	var request CategoryRequest
	if !handler.Bind(c, &request) {
		return
	}

	if _, err := h.categoryService.Create(c.Request.Context(), &request); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, adminIndexPath, categoryCreatedMessage)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	ID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request CategoryRequest
	if !handler.Bind(c, &request) {
		return
	}

	if err := h.categoryService.Update(c.Request.Context(), ID, &request); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, adminIndexPath, categoryUpdatedMessage)
}

func (h *CategoryHandler) Destroy(c *gin.Context) {
	ID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), ID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, adminIndexPath, categoryDeletedMessage)
}
