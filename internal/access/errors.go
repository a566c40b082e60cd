package access

import (
	"net/http"

	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
)

const (
	notOwner = "NOT_OWNER" // errInfo
)

var (
	ErrNotOwner = sharedError.NewDomainError(notOwner)
)

func init() {
	sharedError.RegisterDomainErrorResponse(notOwner, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "ACCESS-001",
		Message: InvalidAccessMessage,
	})
}
