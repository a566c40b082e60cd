package member

import (
	"net/http"

	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
)

const (
	memberAlreadyExists = "MEMBER_ALREADY_EXISTS" // errInfo
	memberNotFound      = "MEMBER_NOT_FOUND"      // errInfo
)

var (
	ErrMemberAlreadyExists = sharedError.NewDomainError(memberAlreadyExists)
	ErrMemberNotFound      = sharedError.NewDomainError(memberNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "会員情報が見つかりません。",
	})

	sharedError.RegisterDomainErrorResponse(memberAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "このメールアドレスはすでに登録されています。",
	})
}
