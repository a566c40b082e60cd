package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// phoneRegex matches Japanese landline and mobile numbers
	// Formats: 03-1234-5678, 090-1234-5678 or 09012345678
	phoneRegex = regexp.MustCompile(`^0\d{1,4}-?\d{1,4}-?\d{4}$`)

	// postalCodeRegex matches 7 digit postal codes without hyphen
	postalCodeRegex = regexp.MustCompile(`^\d{7}$`)
)

// ValidatePhone validates a Japanese phone number
func ValidatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if len(phone) > 13 {
		return false
	}
	return phoneRegex.MatchString(phone)
}

func ValidatePostalCode(fl validator.FieldLevel) bool {
	return postalCodeRegex.MatchString(fl.Field().String())
}
