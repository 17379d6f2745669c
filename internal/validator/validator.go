package validator

import (
	"fmt"
	"regexp"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-booking/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	ErrRequired        = "is required"
	ErrInvalidEmail    = "must be a valid email address"
	ErrInvalidPassword = "must be at least 8 characters long and include at least one uppercase letter, " +
		"one lowercase letter, one number, and one special character (!@#$%^&*)."
	ErrPaymentMethod  = "must be one of credit, debit, upi"
	ErrDefaultInvalid = "is invalid"
)

var (
	hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)
	now           = time.Now
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("show_date", validateShowDate)
	validator.RegisterValidation("payment_method", validatePaymentMethod)

	return validator
}

// validateShowDate accepts dates from today up to the end of the booking window.
func validateShowDate(fl validator.FieldLevel) bool {
	var date time.Time

	switch v := fl.Field().Interface().(type) {
	case openapi_types.Date:
		date = v.Time
	case time.Time:
		date = v
	default:
		return false
	}

	return InBookingWindow(date, now())
}

func InBookingWindow(date, today time.Time) bool {
	y, m, d := today.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 0, domain.BookingWindowDays-1)

	y, m, d = date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return !day.Before(first) && !day.After(last)
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch domain.PaymentMethod(fl.Field().String()) {
	case domain.PaymentMethodCredit, domain.PaymentMethodDebit, domain.PaymentMethodUPI:
		return true
	default:
		return false
	}
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrInvalidEmail
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "alpha":
		return "must contain only letters"
	case "show_date":
		return fmt.Sprintf("must be within the next %d days", domain.BookingWindowDays)
	case "payment_method":
		return ErrPaymentMethod
	case "password":
		return ErrInvalidPassword
	default:
		return ErrDefaultInvalid
	}
}
