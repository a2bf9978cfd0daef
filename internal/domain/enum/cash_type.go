package enum

// CashType distinguishes cash-in from cash-out register entries
type CashType string

const (
	CashTypeIn  CashType = "in"
	CashTypeOut CashType = "out"
)

func (t CashType) IsValid() bool {
	return t == CashTypeIn || t == CashTypeOut
}
