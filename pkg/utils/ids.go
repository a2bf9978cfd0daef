package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID generates a random identifier
func NewID() string {
	return uuid.New().String()
}

// DatedReference builds "<prefix>-YYYYMMDD-<last 4 digits of epoch millis>",
// e.g. INV-20240131-4821.
func DatedReference(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, t.Format("20060102"), t.UnixMilli()%10000)
}

// MillisReference builds "<prefix>-<epoch millis>", e.g. CASH-1706659200000.
func MillisReference(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, t.UnixMilli())
}

// SequentialID returns prefix followed by n zero-padded to width digits, e.g. C0005.
func SequentialID(prefix string, n, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}
