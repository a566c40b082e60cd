package restaurant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

type RestaurantHandler struct {
	restaurantService *RestaurantService
}

func NewRestaurantHandler(restaurantService *RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
	}
}

func (h *RestaurantHandler) Home(c *gin.Context) {
	response, err := h.restaurantService.Home(c.Request.Context())
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *RestaurantHandler) Index(c *gin.Context) {
	var request SearchRequest
	if !handler.BindQuery(c, &request) {
		return
	}

	page := pagination.FromQuery(c, pagination.DefaultPerPage)
	filter := request.Filter()

	restaurants, meta, err := h.restaurantService.Search(c.Request.Context(), filter, page)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	direction := "desc"
	if !filter.Descending {
		direction = "asc"
	}
	c.JSON(http.StatusOK, ListResponse{
		Restaurants: restaurants,
		Meta:        meta,
		Keyword:     request.Keyword,
		CategoryID:  request.CategoryID,
		Price:       request.Price,
		Sort:        filter.Sort,
		Direction:   direction,
		Flash:       handler.TakeFlash(c),
	})
}

func (h *RestaurantHandler) Show(c *gin.Context) {
	ID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.restaurantService.Get(c.Request.Context(), ID, sharedContext.GetPrincipal(c))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *RestaurantHandler) RegularHolidays(c *gin.Context) {
	holidays, err := h.restaurantService.RegularHolidays(c.Request.Context())
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, HolidayListResponse{RegularHolidays: holidays})
}
