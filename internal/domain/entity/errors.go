package entity

import "errors"

var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrCartFull          = errors.New("cart line limit reached")
	ErrPaidByPoints      = errors.New("cannot add items once fully paid by points")
	ErrLineNotFound      = errors.New("cart line not found")
	ErrUnitNotFound      = errors.New("unit not found for product")
	ErrInvalidCartField  = errors.New("cart field must be quantity or discount")
	ErrPointsLineLocked  = errors.New("points discount line cannot be edited")
	ErrInvalidPointValue = errors.New("point value must be greater than 0")
)
