package validator

import (
	"errors"
	"testing"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"4", "4"},
		{"4111", "4111"},
		{"41111", "4111 1"},
		{"4111111111111111", "4111 1111 1111 1111"},
		{"4111-1111-1111-1111", "4111 1111 1111 1111"},
		{"  4111 1111  1111 1111 ", "4111 1111 1111 1111"},
		{"4111 1111 1111 1111 9999", "4111 1111 1111 1111"},
		{"abcd", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := FormatCardNumber(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, FormatCardNumber(got), "formatting must be idempotent")
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12/"},
		{"122", "12/2"},
		{"1228", "12/28"},
		{"12/28", "12/28"},
		{"12-2899", "12/28"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := FormatExpiry(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, FormatExpiry(got), "formatting must be idempotent")
		})
	}
}

func TestSanitizeCVV(t *testing.T) {
	assert.Equal(t, "123", SanitizeCVV("1a2b3"))
	assert.Equal(t, "1234", SanitizeCVV("123456"))
	assert.Equal(t, "", SanitizeCVV("abc"))
}

func TestValidateCard(t *testing.T) {
	tests := []struct {
		name      string
		number    string
		cardName  string
		expiry    string
		cvv       string
		wantField string
	}{
		{name: "valid card", number: "4111 1111 1111 1111", cardName: "John Doe", expiry: "12/28", cvv: "123"},
		{name: "four digit cvv", number: "4111111111111111", cardName: "John Doe", expiry: "12/28", cvv: "1234"},
		{name: "twelve digit number", number: "4111 1111 1111", cardName: "John Doe", expiry: "12/28", cvv: "123", wantField: "cardNumber"},
		{name: "empty number", cardName: "John Doe", expiry: "12/28", cvv: "123", wantField: "cardNumber"},
		{name: "blank name", number: "4111 1111 1111 1111", cardName: "   ", expiry: "12/28", cvv: "123", wantField: "cardName"},
		{name: "short expiry", number: "4111 1111 1111 1111", cardName: "John Doe", expiry: "12/2", cvv: "123", wantField: "expiry"},
		{name: "short cvv", number: "4111 1111 1111 1111", cardName: "John Doe", expiry: "12/28", cvv: "12", wantField: "cvv"},
		{name: "non digit cvv", number: "4111 1111 1111 1111", cardName: "John Doe", expiry: "12/28", cvv: "1x2", wantField: "cvv"},
		{name: "number reported before name", number: "4111", cardName: "", expiry: "", cvv: "", wantField: "cardNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCard(tt.number, tt.cardName, tt.expiry, tt.cvv)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var instrumentErr *InstrumentError
			require.True(t, errors.As(err, &instrumentErr), "expected InstrumentError, got %v", err)
			assert.Equal(t, tt.wantField, instrumentErr.Field)
			assert.NotEmpty(t, instrumentErr.Reason)
		})
	}
}

func TestValidateCard_DistinctReasons(t *testing.T) {
	failures := []error{
		ValidateCard("4111", "John Doe", "12/28", "123"),
		ValidateCard("4111111111111111", "", "12/28", "123"),
		ValidateCard("4111111111111111", "John Doe", "12", "123"),
		ValidateCard("4111111111111111", "John Doe", "12/28", "1"),
	}

	seen := make(map[string]bool)
	for _, err := range failures {
		require.Error(t, err)
		assert.False(t, seen[err.Error()], "duplicate reason %q", err.Error())
		seen[err.Error()] = true
	}
}

func TestValidateUpi(t *testing.T) {
	assert.NoError(t, ValidateUpi("example@paytm"))
	assert.NoError(t, ValidateUpi("@"))
	assert.Error(t, ValidateUpi("examplepaytm"))
	assert.Error(t, ValidateUpi(""))
}

func TestValidateInstrument(t *testing.T) {
	card := domain.PaymentInstrument{
		CardNumber: "4111 1111 1111 1111",
		CardName:   "John Doe",
		Expiry:     "12/28",
		CVV:        "123",
	}

	card.Method = domain.PaymentMethodCredit
	assert.NoError(t, ValidateInstrument(card))

	card.Method = domain.PaymentMethodDebit
	assert.NoError(t, ValidateInstrument(card))

	upi := domain.PaymentInstrument{Method: domain.PaymentMethodUPI, UpiID: "example@gpay"}
	assert.NoError(t, ValidateInstrument(upi))

	upi.UpiID = "example"
	assert.Error(t, ValidateInstrument(upi))

	var instrumentErr *InstrumentError
	err := ValidateInstrument(domain.PaymentInstrument{Method: "cash"})
	require.ErrorAs(t, err, &instrumentErr)
	assert.Equal(t, "method", instrumentErr.Field)
}
