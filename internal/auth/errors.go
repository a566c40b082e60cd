package auth

import (
	"net/http"

	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
)

const (
	invalidRefreshToken    = "INVALID_REFRESH_TOKEN"    // errInfo
	incorrectEmailPassword = "INCORRECT_EMAIL_PASSWORD" // errInfo
)

var (
	ErrInvalidRefreshToken    = sharedError.NewDomainError(invalidRefreshToken)
	ErrInCorrectEmailPassword = sharedError.NewDomainError(incorrectEmailPassword)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidRefreshToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-001",
		Message: "認証の有効期限が切れました。再度ログインしてください。",
	})

	sharedError.RegisterDomainErrorResponse(incorrectEmailPassword, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "メールアドレスまたはパスワードが正しくありません。",
	})
}
