package reservation

import (
	"net/http"

	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
)

const (
	reservationNotFound = "RESERVATION_NOT_FOUND" // errInfo
)

var (
	ErrReservationNotFound = sharedError.NewDomainError(reservationNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(reservationNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "RESERVATION-001",
		Message: "予約が見つかりません。",
	})
}
