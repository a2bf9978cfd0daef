package entity

import "github.com/shopspring/decimal"

// Settings is the store-level configuration edited from the back office.
type Settings struct {
	StoreName string         `json:"store_name" validate:"required,max=100"`
	Address   string         `json:"address"`
	City      string         `json:"city"`
	Province  string         `json:"province"`
	Phone     string         `json:"phone"`
	Footer    string         `json:"footer"`
	Points    PointsSettings `json:"points"`
}

// PointsSettings controls loyalty redemption. RpPerPoint is the spend that
// earns one point; PointValue is the rupiah value of one redeemed point.
type PointsSettings struct {
	Enabled    bool            `json:"enabled"`
	RpPerPoint decimal.Decimal `json:"rp_per_point"`
	PointValue decimal.Decimal `json:"point_value"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() *Settings {
	return &Settings{
		StoreName: "HIJRAH CELL",
		Address:   "Jl. Raya No. 1",
		City:      "Jakarta",
		Province:  "DKI Jakarta",
		Phone:     "0812-0000-0000",
		Footer:    "Terima kasih atas kunjungan Anda",
		Points: PointsSettings{
			Enabled:    true,
			RpPerPoint: decimal.NewFromInt(10000),
			PointValue: decimal.NewFromInt(1),
		},
	}
}

// Normalize fills zero values with defaults.
func (s *Settings) Normalize() {
	def := DefaultSettings()
	if s.StoreName == "" {
		s.StoreName = def.StoreName
	}
	if !s.Points.RpPerPoint.IsPositive() {
		s.Points.RpPerPoint = def.Points.RpPerPoint
	}
	if !s.Points.PointValue.IsPositive() {
		s.Points.PointValue = def.Points.PointValue
	}
}
