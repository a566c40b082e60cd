package category

import (
	"net/http"

	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
)

const (
	categoryNotFound      = "CATEGORY_NOT_FOUND"      // errInfo
	categoryAlreadyExists = "CATEGORY_ALREADY_EXISTS" // errInfo
)

var (
	ErrCategoryNotFound      = sharedError.NewDomainError(categoryNotFound)
	ErrCategoryAlreadyExists = sharedError.NewDomainError(categoryAlreadyExists)
)

func init() {
	sharedError.RegisterDomainErrorResponse(categoryNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "CATEGORY-001",
		Message: "カテゴリが見つかりません。",
	})

	sharedError.RegisterDomainErrorResponse(categoryAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "CATEGORY-002",
		Message: "このカテゴリ名はすでに登録されています。",
	})
}
