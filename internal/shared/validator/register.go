package validator

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

// RegisterAll registers all common validators defined in this package
// Domain-specific validators should be registered separately by each domain
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	// Field errors are reported under the json (or form) name
	v.RegisterTagNameFunc(fieldName)

	validators := map[string]validator.Func{
		"phone":       ValidatePhone,
		"postal_code": ValidatePostalCode,
		"date_ymd":    ValidateDate,
		"time_hm":     ValidateTime,
		"notblank":    validators.NotBlank,
	}
	names := make([]string, 0, len(validators))
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("%s validator 등록 실패: %w", tag, err)
		}
		names = append(names, tag)
	}

	slog.Info("공통 Validator 등록 완료", "validators", strings.Join(names, ","))
	return nil
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ValidateStruct runs the binding validator (with the custom tags above) on obj.
// Use it for input that does not arrive through gin binding, such as spreadsheet rows.
func ValidateStruct(obj any) error {
	return binding.Validator.ValidateStruct(obj)
}
