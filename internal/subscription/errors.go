package subscription

import (
	"net/http"

	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
)

const (
	billingFailed = "BILLING_FAILED" // errInfo
)

var (
	ErrBillingFailed = sharedError.NewDomainError(billingFailed)
)

func init() {
	sharedError.RegisterDomainErrorResponse(billingFailed, sharedError.ErrorResponse{
		Status:  http.StatusBadGateway,
		Code:    "SUBSCRIPTION-001",
		Message: "決済サービスとの通信に失敗しました。",
	})
}
