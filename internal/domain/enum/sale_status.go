package enum

import "encoding/json"

// SaleStatus represents the status of a sale record
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "Completed"
	SaleStatusPending   SaleStatus = "Pending"
	SaleStatusCancelled SaleStatus = "Cancelled"
)

func (s SaleStatus) String() string {
	return string(s)
}

func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusPending, SaleStatusCancelled:
		return true
	}
	return false
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		str = string(SaleStatusCompleted)
	}
	*s = SaleStatus(str)
	return nil
}
