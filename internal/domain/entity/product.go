package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultUnitName is the unit synthesized for products defined without units.
const DefaultUnitName = "PCS"

// Unit is a sale unit of a product. Quantity is the multiplier relative to the base unit.
type Unit struct {
	Name     string          `json:"name" validate:"required,max=20"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Barcode  string          `json:"barcode,omitempty" validate:"max=64"`
}

// IsBase reports whether the unit is the base unit (multiplier 1).
func (u Unit) IsBase() bool {
	return u.Quantity.Equal(decimal.NewFromInt(1))
}

// Product represents a catalog item. ID is the PLU.
type Product struct {
	ID         string          `json:"id" validate:"required,max=64"`
	Name       string          `json:"name" validate:"required,max=255"`
	Category   string          `json:"category,omitempty"`
	GroupID    string          `json:"group_id,omitempty"`
	SupplierID string          `json:"supplier_id,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      decimal.Decimal `json:"stock"`
	ImageURL   string          `json:"image_url,omitempty"`
	Units      []Unit          `json:"units" validate:"dive"`
}

// SaleUnits returns the product's units, or a single PCS unit priced at the
// base price when none are defined.
func (p *Product) SaleUnits() []Unit {
	if len(p.Units) > 0 {
		return p.Units
	}
	return []Unit{{
		Name:     DefaultUnitName,
		Quantity: decimal.NewFromInt(1),
		Price:    p.Price,
		Barcode:  p.ID,
	}}
}

// BaseUnit returns the unit with multiplier 1, falling back to the first unit.
func (p *Product) BaseUnit() Unit {
	units := p.SaleUnits()
	for _, u := range units {
		if u.IsBase() {
			return u
		}
	}
	return units[0]
}

// UnitByName looks up a unit by its exact name.
func (p *Product) UnitByName(name string) (Unit, bool) {
	for _, u := range p.SaleUnits() {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}

// UnitByBarcode looks up a unit by barcode, ignoring case.
func (p *Product) UnitByBarcode(code string) (Unit, bool) {
	for _, u := range p.Units {
		if u.Barcode != "" && strings.EqualFold(u.Barcode, code) {
			return u, true
		}
	}
	return Unit{}, false
}

// BaseUnitCount returns how many units carry multiplier 1.
func (p *Product) BaseUnitCount() int {
	n := 0
	for _, u := range p.Units {
		if u.IsBase() {
			n++
		}
	}
	return n
}

// SetBasePrice updates the base price together with the base unit price.
func (p *Product) SetBasePrice(price decimal.Decimal) {
	p.Price = price
	for i := range p.Units {
		if p.Units[i].IsBase() {
			p.Units[i].Price = price
		}
	}
}

// ProductGroup is a product category used for reporting and filtering.
type ProductGroup struct {
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=255"`
}
