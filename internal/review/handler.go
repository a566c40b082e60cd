package review

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/access"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

const (
	reviewCreatedMessage = "レビューを投稿しました。"
	reviewUpdatedMessage = "レビューを編集しました。"
	reviewDeletedMessage = "レビューを削除しました。"
)

func indexPath(restaurantID uint32) string {
	return fmt.Sprintf("/restaurants/%d/reviews", restaurantID)
}

type ReviewHandler struct {
	reviewService *ReviewService
	guard         *access.Guard
}

func NewReviewHandler(reviewService *ReviewService, guard *access.Guard) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		guard:         guard,
	}
}

func (h *ReviewHandler) Index(c *gin.Context) {
	restaurantID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	page := pagination.FromQuery(c, pagination.DefaultPerPage)
	response, err := h.reviewService.List(c.Request.Context(), restaurantID, sharedContext.GetPrincipal(c), page.Number)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *ReviewHandler) Store(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}
	restaurantID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request ReviewRequest
	if !handler.Bind(c, &request) {
		return
	}

	if _, err := h.reviewService.Create(c.Request.Context(), memberID, restaurantID, &request); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, indexPath(restaurantID), reviewCreatedMessage)
}

func (h *ReviewHandler) Edit(c *gin.Context) {
	if _, ok := h.guard.RequireMemberID(c); !ok {
		return
	}
	restaurantID, reviewID, ok := parseIDs(c)
	if !ok {
		return
	}

	response, err := h.reviewService.Edit(c.Request.Context(), sharedContext.GetPrincipal(c), restaurantID, reviewID)
	if err != nil {
		h.fail(c, err, restaurantID)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

// Update checks ownership before looking at the body, so a non-owner is
// denied even with an invalid form.
func (h *ReviewHandler) Update(c *gin.Context) {
	if _, ok := h.guard.RequireMemberID(c); !ok {
		return
	}
	restaurantID, reviewID, ok := parseIDs(c)
	if !ok {
		return
	}

	principal := sharedContext.GetPrincipal(c)
	if _, err := h.reviewService.Authorize(c.Request.Context(), principal, restaurantID, reviewID); err != nil {
		h.fail(c, err, restaurantID)
		return
	}

	var request ReviewRequest
	if !handler.Bind(c, &request) {
		return
	}

	if err := h.reviewService.Update(c.Request.Context(), principal, restaurantID, reviewID, &request); err != nil {
		h.fail(c, err, restaurantID)
		return
	}

	handler.RedirectWithFlash(c, indexPath(restaurantID), reviewUpdatedMessage)
}

func (h *ReviewHandler) Destroy(c *gin.Context) {
	if _, ok := h.guard.RequireMemberID(c); !ok {
		return
	}
	reviewID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	restaurantID, err := h.reviewService.Delete(c.Request.Context(), sharedContext.GetPrincipal(c), reviewID)
	if err != nil {
		h.fail(c, err, restaurantID)
		return
	}

	handler.RedirectWithFlash(c, indexPath(restaurantID), reviewDeletedMessage)
}

func (h *ReviewHandler) fail(c *gin.Context, err error, restaurantID uint32) {
	if errors.Is(err, access.ErrNotOwner) {
		c.Error(err)
		h.guard.DenyNotOwner(c, indexPath(restaurantID))
		return
	}
	handler.RespondDomainError(c, err)
}

func parseIDs(c *gin.Context) (uint32, uint32, bool) {
	restaurantID, ok := handler.ParseID(c, "id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok := handler.ParseID(c, "review")
	if !ok {
		return 0, 0, false
	}
	return restaurantID, reviewID, true
}
