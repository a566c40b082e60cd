package restaurant

import (
	"net/http"

	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
)

const (
	restaurantNotFound = "RESTAURANT_NOT_FOUND" // errInfo
	invalidImportFile  = "INVALID_IMPORT_FILE"  // errInfo
)

var (
	ErrRestaurantNotFound = sharedError.NewDomainError(restaurantNotFound)
	ErrInvalidImportFile  = sharedError.NewDomainError(invalidImportFile)
)

func init() {
	sharedError.RegisterDomainErrorResponse(restaurantNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "RESTAURANT-001",
		Message: "店舗が見つかりません。",
	})

	sharedError.RegisterDomainErrorResponse(invalidImportFile, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "RESTAURANT-002",
		Message: "Excelファイルを読み込めませんでした。1行目を見出し行とし、2行目以降に店舗を入力してください。",
	})
}
