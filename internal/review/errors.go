package review

import (
	"net/http"

	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
)

const (
	reviewNotFound = "REVIEW_NOT_FOUND" // errInfo
)

var (
	ErrReviewNotFound = sharedError.NewDomainError(reviewNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(reviewNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "REVIEW-001",
		Message: "レビューが見つかりません。",
	})
}
