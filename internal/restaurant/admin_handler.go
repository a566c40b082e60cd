package restaurant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"github.com/nagoyameshi/go-api-server/internal/storage"
)

const (
	adminIndexPath = "/admin/restaurants"

	restaurantCreatedMessage = "店舗を登録しました。"
	restaurantUpdatedMessage = "店舗を更新しました。"
	restaurantDeletedMessage = "店舗を削除しました。"
)

type AdminRestaurantHandler struct {
	restaurantService *RestaurantService
}

func NewAdminRestaurantHandler(restaurantService *RestaurantService) *AdminRestaurantHandler {
	return &AdminRestaurantHandler{
		restaurantService: restaurantService,
	}
}

func (h *AdminRestaurantHandler) Index(c *gin.Context) {
	keyword := c.Query("keyword")
	page := pagination.FromQuery(c, pagination.DefaultPerPage)
	filter := Filter{Keyword: keyword, NameOnly: true, Sort: SortCreatedAt}

	restaurants, meta, err := h.restaurantService.Search(c.Request.Context(), filter, page)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Restaurants: restaurants,
		Meta:        meta,
		Keyword:     keyword,
		Sort:        filter.Sort,
		Direction:   "asc",
		Flash:       handler.TakeFlash(c),
	})
}

func (h *AdminRestaurantHandler) Show(c *gin.Context) {
	ID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.restaurantService.Get(c.Request.Context(), ID, sharedContext.Principal{})
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *AdminRestaurantHandler) Store(c *gin.Context) {
	var request RestaurantRequest
	if !handler.Bind(c, &request) {
		return
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}
	defer closeImage()

	if _, err := h.restaurantService.Create(c.Request.Context(), &request, image); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, adminIndexPath, restaurantCreatedMessage)
}

func (h *AdminRestaurantHandler) Update(c *gin.Context) {
	ID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request RestaurantRequest
	if !handler.Bind(c, &request) {
		return
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}
	defer closeImage()

	if err := h.restaurantService.Update(c.Request.Context(), ID, &request, image); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, adminIndexPath, restaurantUpdatedMessage)
}

func (h *AdminRestaurantHandler) Destroy(c *gin.Context) {
	ID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.restaurantService.Delete(c.Request.Context(), ID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, adminIndexPath, restaurantDeletedMessage)
}

func (h *AdminRestaurantHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		verr := sharedError.NewValidationError()
		verr.Add("file", "fileは必須項目です。")
		handler.RespondDomainError(c, verr)
		return
	}

	f, err := fh.Open()
	if err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}
	defer f.Close()

	response, err := h.restaurantService.Import(c.Request.Context(), f)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// formImage returns the uploaded "image" file, or nil when the request has none.
func formImage(c *gin.Context) (*storage.Image, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &storage.Image{Filename: fh.Filename, Size: fh.Size, Body: f}, func() { f.Close() }, nil
}
