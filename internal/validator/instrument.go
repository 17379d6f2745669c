package validator

import (
	"fmt"
	"strings"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

const (
	cardDigits   = 16
	expiryLength = 5
	minCVVDigits = 3
	maxCVVDigits = 4
)

// InstrumentError reports the first payment field that failed validation.
type InstrumentError struct {
	Field  string
	Reason string
}

func (e *InstrumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func digitsOf(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// FormatCardNumber keeps at most 16 digits and groups them in blocks of four.
func FormatCardNumber(raw string) string {
	digits := digitsOf(raw)
	if len(digits) > cardDigits {
		digits = digits[:cardDigits]
	}

	groups := make([]string, 0, (len(digits)+3)/4)
	for i := 0; i < len(digits); i += 4 {
		end := min(i+4, len(digits))
		groups = append(groups, digits[i:end])
	}

	return strings.Join(groups, " ")
}

// FormatExpiry renders up to four digits as MM/YY, adding the slash as soon as
// the month is complete.
func FormatExpiry(raw string) string {
	digits := digitsOf(raw)
	if len(digits) > 4 {
		digits = digits[:4]
	}

	if len(digits) < 2 {
		return digits
	}

	return digits[:2] + "/" + digits[2:]
}

func SanitizeCVV(raw string) string {
	digits := digitsOf(raw)
	if len(digits) > maxCVVDigits {
		digits = digits[:maxCVVDigits]
	}

	return digits
}

func ValidateCard(number, name, expiry, cvv string) error {
	if len(digitsOf(number)) < cardDigits {
		return &InstrumentError{Field: "cardNumber", Reason: "please enter a valid 16-digit card number"}
	}

	if strings.TrimSpace(name) == "" {
		return &InstrumentError{Field: "cardName", Reason: "please enter the name on card"}
	}

	if len(expiry) < expiryLength {
		return &InstrumentError{Field: "expiry", Reason: "please enter a valid expiry date (MM/YY)"}
	}

	if len(digitsOf(cvv)) < minCVVDigits {
		return &InstrumentError{Field: "cvv", Reason: "please enter a valid CVV"}
	}

	return nil
}

func ValidateUpi(id string) error {
	if !strings.Contains(id, "@") {
		return &InstrumentError{Field: "upiId", Reason: "please enter a valid UPI ID (e.g., name@upi)"}
	}

	return nil
}

func ValidateInstrument(instrument domain.PaymentInstrument) error {
	switch {
	case instrument.Method == domain.PaymentMethodUPI:
		return ValidateUpi(instrument.UpiID)
	case instrument.Method.IsCard():
		return ValidateCard(instrument.CardNumber, instrument.CardName, instrument.Expiry, instrument.CVV)
	default:
		return &InstrumentError{Field: "method", Reason: ErrPaymentMethod}
	}
}
