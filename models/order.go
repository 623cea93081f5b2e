package models

import "time"

// PaymentMethod is how the customer pays at pickup.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentEMoney     PaymentMethod = "e_money"
)

// PaymentMethods lists the choices in display order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCreditCard, PaymentEMoney}

// ParsePaymentMethod never fails: anything unknown is cash.
func ParsePaymentMethod(s string) PaymentMethod {
	switch PaymentMethod(s) {
	case PaymentCreditCard:
		return PaymentCreditCard
	case PaymentEMoney:
		return PaymentEMoney
	default:
		return PaymentCash
	}
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCreditCard:
		return "クレジットカード"
	case PaymentEMoney:
		return "電子マネー"
	default:
		return "現金"
	}
}

// Order is the result of a finalized checkout. It is never stored; only
// OrderNumber is handed to the thank-you page.
type Order struct {
	OrderNumber   string        `json:"orderNumber"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	ItemCount     int           `json:"itemCount"`
	Subtotal      Price         `json:"subtotal"`
	Total         int64         `json:"total"`
	PlacedAt      time.Time     `json:"placedAt"`
}
