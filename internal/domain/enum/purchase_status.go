package enum

// PurchaseStatus represents the receiving status of a purchase
type PurchaseStatus string

const (
	PurchaseStatusReceived PurchaseStatus = "Received"
	PurchaseStatusOrdered  PurchaseStatus = "Ordered"
	PurchaseStatusPending  PurchaseStatus = "Pending"
)

func (s PurchaseStatus) String() string {
	return string(s)
}

// PurchaseStatusFor derives the status from the payment method: credit purchases stay pending.
func PurchaseStatusFor(paymentMethod string) PurchaseStatus {
	if paymentMethod == "kredit" {
		return PurchaseStatusPending
	}
	return PurchaseStatusReceived
}
