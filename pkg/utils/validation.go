package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	trackingNumberRe = regexp.MustCompile(`^[A-Z]{3,4}-?[A-Z0-9]{6,12}$`)
	// 17 characters, no I, O or Q.
	vinRe   = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	emailRe = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
)

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("user_role", validateUserRole)
	_ = validate.RegisterValidation("vin", validateVIN)
	_ = validate.RegisterValidation("tracking_number", validateTrackingNumber)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "admin" || role == "user"
}

func validateVIN(fl validator.FieldLevel) bool {
	return vinRe.MatchString(fl.Field().String())
}

func validateTrackingNumber(fl validator.FieldLevel) bool {
	return trackingNumberRe.MatchString(fl.Field().String())
}

// IsValidTrackingNumber reports whether a sanitized tracking number has the
// expected shape. Checked before any carrier call is made.
func IsValidTrackingNumber(number string) bool {
	return trackingNumberRe.MatchString(number)
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	return emailRe.MatchString(email)
}
