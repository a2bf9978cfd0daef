package enum

import "strings"

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodEWallet PaymentMethod = "ewallet"
	PaymentMethodBank    PaymentMethod = "bank"
	PaymentMethodQRIS    PaymentMethod = "qris"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodEWallet, PaymentMethodBank, PaymentMethodQRIS:
		return true
	}
	return false
}

// Label returns the receipt label for the method, e.g. "E-Wallet (OVO)".
func (m PaymentMethod) Label(detail string) string {
	switch m {
	case PaymentMethodEWallet:
		return withDetail("E-Wallet", detail)
	case PaymentMethodBank:
		return withDetail("Kartu Bank", detail)
	case PaymentMethodQRIS:
		return "QRIS"
	default:
		return "Tunai"
	}
}

func withDetail(label, detail string) string {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return label
	}
	return label + " (" + detail + ")"
}
