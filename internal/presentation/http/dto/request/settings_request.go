package request

import "github.com/shopspring/decimal"

// UpdateSettingsRequest represents a store settings update
type UpdateSettingsRequest struct {
	StoreName     string          `json:"store_name" binding:"required,max=255"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	Province      string          `json:"province"`
	Phone         string          `json:"phone"`
	Footer        string          `json:"footer"`
	PointsEnabled bool            `json:"points_enabled"`
	RpPerPoint    decimal.Decimal `json:"rp_per_point"`
	PointValue    decimal.Decimal `json:"point_value"`
}

// PriceTagRequest selects the products to print tags for
type PriceTagRequest struct {
	ProductIDs []string `json:"product_ids" binding:"required,min=1"`
}

// DateRangeRequest bounds report queries. Dates are YYYY-MM-DD, inclusive.
type DateRangeRequest struct {
	From    string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To      string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
