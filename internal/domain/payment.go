package domain

import "context"

type PaymentMethod string

const (
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodUPI    PaymentMethod = "upi"
)

func (m PaymentMethod) IsCard() bool {
	return m == PaymentMethodCredit || m == PaymentMethodDebit
}

// PaymentInstrument is what the payer typed in. It is validated and then
// dropped; nothing of it is persisted.
type PaymentInstrument struct {
	Method     PaymentMethod
	CardNumber string
	CardName   string
	Expiry     string
	CVV        string
	UpiID      string
}

type GatewayOutcome struct {
	Approved  bool
	Reference string
	Reason    string
}

type PaymentGateway interface {
	SubmitPayment(ctx context.Context, bookingID string) (GatewayOutcome, error)
}
