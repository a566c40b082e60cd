package reservation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/access"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
)

const (
	indexPath = "/reservations"

	reservationCreatedMessage  = "予約が完了しました。"
	reservationCanceledMessage = "予約をキャンセルしました。"
)

type ReservationHandler struct {
	reservationService *ReservationService
	guard              *access.Guard
}

func NewReservationHandler(reservationService *ReservationService, guard *access.Guard) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		guard:              guard,
	}
}

func (h *ReservationHandler) Index(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}

	page := pagination.FromQuery(c, pagination.DefaultPerPage)
	response, err := h.reservationService.List(c.Request.Context(), memberID, page)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *ReservationHandler) Create(c *gin.Context) {
	if _, ok := h.guard.RequireMemberID(c); !ok {
		return
	}
	restaurantID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.reservationService.CreateForm(c.Request.Context(), restaurantID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	response.Flash = handler.TakeFlash(c)
	c.JSON(http.StatusOK, response)
}

func (h *ReservationHandler) Store(c *gin.Context) {
	memberID, ok := h.guard.RequireMemberID(c)
	if !ok {
		return
	}
	restaurantID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request CreateReservationRequest
	if !handler.Bind(c, &request) {
		return
	}

	if _, err := h.reservationService.Create(c.Request.Context(), memberID, restaurantID, &request); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, indexPath, reservationCreatedMessage)
}

func (h *ReservationHandler) Destroy(c *gin.Context) {
	if _, ok := h.guard.RequireMemberID(c); !ok {
		return
	}
	reservationID, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	err := h.reservationService.Cancel(c.Request.Context(), sharedContext.GetPrincipal(c), reservationID)
	if err != nil {
		if errors.Is(err, access.ErrNotOwner) {
			c.Error(err)
			h.guard.DenyNotOwner(c, indexPath)
			return
		}
		handler.RespondDomainError(c, err)
		return
	}

	handler.RedirectWithFlash(c, indexPath, reservationCanceledMessage)
}
