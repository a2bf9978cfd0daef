package request

import "github.com/shopspring/decimal"

// ScanRequest carries a scanner or keyboard token such as "3*8991234567890"
type ScanRequest struct {
	Token string `json:"token" binding:"required"`
}

// AddLineRequest adds a product picked from the catalog
type AddLineRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	UnitName  string          `json:"unit_name"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// UpdateLineRequest sets the quantity or discount of a line
type UpdateLineRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	UnitName  string          `json:"unit_name"`
	Field     string          `json:"field" binding:"required,oneof=quantity discount"`
	Value     decimal.Decimal `json:"value"`
}

// ChangeUnitRequest switches a line to another unit
type ChangeUnitRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	FromUnit  string `json:"from_unit" binding:"required"`
	ToUnit    string `json:"to_unit" binding:"required"`
}

// RemoveLineRequest addresses the line to delete
type RemoveLineRequest struct {
	ProductID string `form:"product_id" binding:"required"`
	UnitName  string `form:"unit_name"`
}

// SelectMemberRequest attaches a member to the transaction
type SelectMemberRequest struct {
	MemberID string `json:"member_id" binding:"required"`
}

// RedeemPointsRequest converts member points into a discount
type RedeemPointsRequest struct {
	Points int64 `json:"points" binding:"required,gt=0"`
}

// ConfirmPaymentRequest is the tender entered by the cashier
type ConfirmPaymentRequest struct {
	Tendered decimal.Decimal `json:"tendered"`
	Method   string          `json:"method" binding:"omitempty,oneof=cash ewallet bank qris"`
	Detail   string          `json:"detail"`
}
