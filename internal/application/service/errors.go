package service

import (
	"errors"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/apperror"
)

// ErrEmptyIdentifier is returned for scan tokens such as "3*" that carry a
// quantity but no identifier. Callers treat it as a no-op.
var ErrEmptyIdentifier = errors.New("scan token has no identifier")

// domainError maps entity errors onto HTTP-aware application errors.
func domainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrCartFull):
		return apperror.NewUnprocessableError("Cart is full: finish or suspend this transaction first")
	case errors.Is(err, entity.ErrPaidByPoints):
		return apperror.NewUnprocessableError("Transaction is fully paid by points; cancel the redemption to add items")
	case errors.Is(err, entity.ErrInvalidQuantity):
		return apperror.NewFieldError("quantity", err.Error())
	case errors.Is(err, entity.ErrInvalidCartField):
		return apperror.NewFieldError("field", err.Error())
	case errors.Is(err, entity.ErrInvalidPointValue):
		return apperror.NewFieldError("point_value", err.Error())
	case errors.Is(err, entity.ErrPointsLineLocked):
		return apperror.NewUnprocessableError(err.Error())
	case errors.Is(err, entity.ErrLineNotFound):
		return apperror.NewNotFoundError("Cart line")
	case errors.Is(err, entity.ErrUnitNotFound):
		return apperror.NewNotFoundError("Unit")
	}
	return err
}
