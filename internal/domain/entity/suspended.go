package entity

import "time"

// SuspendedTransaction is a parked cart awaiting recall.
type SuspendedTransaction struct {
	ID          string     `json:"id"`
	Cart        []CartItem `json:"cart"`
	Member      *Member    `json:"member,omitempty"`
	SuspendedAt time.Time  `json:"suspended_at"`
}
