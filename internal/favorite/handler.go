package favorite

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/access"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

const (
	favoriteAddedMessage   = "お気に入り追加しました"
	favoriteRemovedMessage = "お気に入りを解除しました。"

	indexPath = "/favorites"
)

type FavoriteHandler struct {
	favoriteService *FavoriteService
	guard           *access.Guard
}

func NewFavoriteHandler(favoriteService *FavoriteService, guard *access.Guard) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		guard:           guard,
	}
}

func (h *FavoriteHandler) Index(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.favoriteService.List(c.Request.Context(), memberID, pagination.FromQuery(c, PerPage))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *FavoriteHandler) Store(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}
	restaurantID, ok := handler.ParseID(c, "restaurant_id")
	if !ok {
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), memberID, restaurantID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, handler.Back(c, indexPath), favoriteAddedMessage)
}

func (h *FavoriteHandler) Destroy(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}
	restaurantID, ok := handler.ParseID(c, "restaurant_id")
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), memberID, restaurantID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, handler.Back(c, indexPath), favoriteRemovedMessage)
}
