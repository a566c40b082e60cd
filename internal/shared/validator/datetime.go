package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ValidateDate accepts calendar dates in YYYY-MM-DD
func ValidateDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

// ValidateTime accepts wall clock times in HH:MM
func ValidateTime(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
