package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
// Every failing field is listed in Errors; Message carries the first one.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	resp := sharedError.ValidationFailed
	resp.Message = getErrorMessage(validationErrors[0])
	resp.Errors = make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		if _, exists := resp.Errors[fe.Field()]; exists {
			continue
		}
		resp.Errors[fe.Field()] = getErrorMessage(fe)
	}
	return &resp, true
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%sは必須項目です。", fe.Field())
	case "email":
		return "メールアドレスの形式が正しくありません。"
	case "min":
		if isCollection(fe) {
			return fmt.Sprintf("%sは%s個以上選択してください。", fe.Field(), fe.Param())
		}
		if isNumeric(fe) {
			return fmt.Sprintf("%sは%s以上で入力してください。", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%sは%s文字以上で入力してください。", fe.Field(), fe.Param())
	case "max":
		if isCollection(fe) {
			return fmt.Sprintf("%sは%s個以下で選択してください。", fe.Field(), fe.Param())
		}
		if isNumeric(fe) {
			return fmt.Sprintf("%sは%s以下で入力してください。", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%sは%s文字以内で入力してください。", fe.Field(), fe.Param())
	case "phone":
		return "電話番号の形式が正しくありません。"
	case "postal_code":
		return "郵便番号はハイフンなしの7桁で入力してください。"
	case "date_ymd":
		return fmt.Sprintf("%sはYYYY-MM-DD形式で入力してください。", fe.Field())
	case "time_hm":
		return fmt.Sprintf("%sはHH:MM形式で入力してください。", fe.Field())
	case "oneof":
		return fmt.Sprintf("%sは%sのいずれかを指定してください。", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%sが一致しません。", fe.Field())
	default:
		return fmt.Sprintf("%sの値が正しくありません。", fe.Field())
	}
}

func isNumeric(fe validator.FieldError) bool {
	switch fe.Kind().String() {
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return true
	}
	return false
}

func isCollection(fe validator.FieldError) bool {
	switch fe.Kind().String() {
	case "slice", "array", "map":
		return true
	}
	return false
}
