package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// PointsDiscountID identifies the synthetic points-redemption line.
	PointsDiscountID = "DISCOUNT-POINTS"
	// PointsUnitName is the unit carried by the points-redemption line.
	PointsUnitName = "VOUCHER"
	// DefaultMaxCartLines matches the visible row budget of the checkout screen.
	DefaultMaxCartLines = 19
)

// CartField names the editable columns of a cart line.
type CartField string

const (
	CartFieldQuantity CartField = "quantity"
	CartFieldDiscount CartField = "discount"
)

// CartItem is a product snapshot plus the chosen unit, quantity and a manual
// absolute discount.
type CartItem struct {
	Product
	Quantity       decimal.Decimal `json:"quantity"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	SelectedUnit   Unit            `json:"selected_unit"`
	PointsRedeemed int64           `json:"points_redeemed,omitempty"`
}

// IsPointsDiscount reports whether this is the points-redemption line.
func (i *CartItem) IsPointsDiscount() bool {
	return i.ID == PointsDiscountID
}

// UnitPrice is the selected unit price, or the negative discount for the points line.
func (i *CartItem) UnitPrice() decimal.Decimal {
	if i.IsPointsDiscount() {
		return i.Price
	}
	return i.SelectedUnit.Price
}

// Gross is unit price times quantity, before the line discount.
func (i *CartItem) Gross() decimal.Decimal {
	return i.UnitPrice().Mul(i.Quantity)
}

// LineTotal is unit price times quantity minus the line discount.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Gross().Sub(i.DiscountAmount)
}

// BaseQuantity is the quantity expressed in base units.
func (i *CartItem) BaseQuantity() decimal.Decimal {
	return i.Quantity.Mul(i.SelectedUnit.Quantity)
}

func (i *CartItem) matches(productID, unitName string) bool {
	return i.ID == productID && (unitName == "" || i.SelectedUnit.Name == unitName)
}

// Cart is the ordered list of lines of the transaction being rung up.
type Cart struct {
	Lines    []CartItem `json:"lines"`
	MaxLines int        `json:"-"`
}

// NewCart creates an empty cart holding at most maxLines distinct lines.
func NewCart(maxLines int) *Cart {
	if maxLines <= 0 {
		maxLines = DefaultMaxCartLines
	}
	return &Cart{Lines: []CartItem{}, MaxLines: maxLines}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// GrandTotal is Σ(unit price × quantity − discount) over every line, the
// points line included. It is derived on every call.
func (c *Cart) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		total = total.Add(c.Lines[i].LineTotal())
	}
	return total
}

// ItemsTotal is the grand total of the real lines only.
func (c *Cart) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		if !c.Lines[i].IsPointsDiscount() {
			total = total.Add(c.Lines[i].LineTotal())
		}
	}
	return total
}

// Subtotal is the gross amount of the real lines before line discounts.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		if !c.Lines[i].IsPointsDiscount() {
			total = total.Add(c.Lines[i].Gross())
		}
	}
	return total
}

// LineDiscounts sums the manual discounts of the real lines.
func (c *Cart) LineDiscounts() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		if !c.Lines[i].IsPointsDiscount() {
			total = total.Add(c.Lines[i].DiscountAmount)
		}
	}
	return total
}

// PointsLine returns the points-redemption line, if any.
func (c *Cart) PointsLine() (*CartItem, bool) {
	for i := range c.Lines {
		if c.Lines[i].IsPointsDiscount() {
			return &c.Lines[i], true
		}
	}
	return nil, false
}

// PointsDiscount is the positive amount taken off by redeemed points.
func (c *Cart) PointsDiscount() decimal.Decimal {
	if line, ok := c.PointsLine(); ok {
		return line.LineTotal().Neg()
	}
	return decimal.Zero
}

// AddLine adds quantity of product in unit. A nil unit selects the base unit.
// Lines are merged by (product id, unit name).
func (c *Cart) AddLine(product Product, quantity decimal.Decimal, unit *Unit) error {
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if _, ok := c.PointsLine(); ok && !c.GrandTotal().IsPositive() {
		return ErrPaidByPoints
	}

	product.Units = append([]Unit(nil), product.SaleUnits()...)
	selected := product.BaseUnit()
	if unit != nil {
		selected = *unit
	}

	for i := range c.Lines {
		line := &c.Lines[i]
		if line.ID == product.ID && line.SelectedUnit.Name == selected.Name {
			line.Quantity = line.Quantity.Add(quantity)
			return nil
		}
	}

	if len(c.Lines) >= c.maxLines() {
		return ErrCartFull
	}

	c.Lines = append(c.Lines, CartItem{
		Product:        product,
		Quantity:       quantity,
		DiscountAmount: decimal.Zero,
		SelectedUnit:   selected,
	})
	return nil
}

// UpdateLine sets the quantity or discount of the line addressed by product
// id and unit name, clamped to zero. An empty unit name addresses every line
// of the product.
func (c *Cart) UpdateLine(productID, unitName string, field CartField, value decimal.Decimal) error {
	if field != CartFieldQuantity && field != CartFieldDiscount {
		return ErrInvalidCartField
	}
	if productID == PointsDiscountID {
		return ErrPointsLineLocked
	}
	if value.IsNegative() {
		value = decimal.Zero
	}

	found := false
	for i := range c.Lines {
		line := &c.Lines[i]
		if !line.matches(productID, unitName) {
			continue
		}
		found = true
		switch field {
		case CartFieldQuantity:
			line.Quantity = value
		case CartFieldDiscount:
			line.DiscountAmount = value
		}
	}
	if !found {
		return ErrLineNotFound
	}
	return nil
}

// ChangeUnit re-points a line to another unit of the same product and takes
// the unit's price. The quantity is not rescaled. When another line already
// holds the target unit the two lines are merged.
func (c *Cart) ChangeUnit(productID, fromUnit, toUnit string) error {
	if productID == PointsDiscountID {
		return ErrPointsLineLocked
	}
	idx := c.indexOf(productID, fromUnit)
	if idx < 0 {
		return ErrLineNotFound
	}
	line := &c.Lines[idx]
	if line.SelectedUnit.Name == toUnit {
		return nil
	}
	unit, ok := line.UnitByName(toUnit)
	if !ok {
		return ErrUnitNotFound
	}

	if target := c.indexOf(productID, toUnit); target >= 0 {
		c.Lines[target].Quantity = c.Lines[target].Quantity.Add(line.Quantity)
		c.Lines[target].DiscountAmount = c.Lines[target].DiscountAmount.Add(line.DiscountAmount)
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
		return nil
	}

	line.SelectedUnit = unit
	return nil
}

// RemoveLine deletes the line addressed by product id and unit name.
func (c *Cart) RemoveLine(productID, unitName string) error {
	idx := c.indexOf(productID, unitName)
	if idx < 0 {
		return ErrLineNotFound
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	return nil
}

// RedeemPoints inserts or replaces the single points-redemption line priced
// at -(points × pointValue).
func (c *Cart) RedeemPoints(points int64, pointValue decimal.Decimal) (CartItem, error) {
	if points <= 0 {
		return CartItem{}, ErrInvalidQuantity
	}
	if !pointValue.IsPositive() {
		return CartItem{}, ErrInvalidPointValue
	}
	c.ClearRedemption()

	discount := decimal.NewFromInt(points).Mul(pointValue)
	unit := Unit{Name: PointsUnitName, Quantity: decimal.NewFromInt(1), Price: discount.Neg()}
	line := CartItem{
		Product: Product{
			ID:       PointsDiscountID,
			Name:     fmt.Sprintf("Tukar Poin (%d Poin)", points),
			Category: "Diskon",
			Price:    discount.Neg(),
			Units:    []Unit{unit},
		},
		Quantity:       decimal.NewFromInt(1),
		DiscountAmount: decimal.Zero,
		SelectedUnit:   unit,
		PointsRedeemed: points,
	}
	c.Lines = append(c.Lines, line)
	return line, nil
}

// ClearRedemption removes the points line and reports whether one existed.
func (c *Cart) ClearRedemption() bool {
	for i := range c.Lines {
		if c.Lines[i].IsPointsDiscount() {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	out := &Cart{Lines: make([]CartItem, len(c.Lines)), MaxLines: c.MaxLines}
	for i, line := range c.Lines {
		line.Units = append([]Unit(nil), line.Units...)
		out.Lines[i] = line
	}
	return out
}

func (c *Cart) indexOf(productID, unitName string) int {
	for i := range c.Lines {
		if c.Lines[i].matches(productID, unitName) {
			return i
		}
	}
	return -1
}

func (c *Cart) maxLines() int {
	if c.MaxLines <= 0 {
		return DefaultMaxCartLines
	}
	return c.MaxLines
}
