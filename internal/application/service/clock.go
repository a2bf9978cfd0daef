package service

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sangkips/retail-pos/pkg/apperror"
)

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validateStruct runs struct tag validation and converts failures to a 422.
func validateStruct(v interface{}) error {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	if err := validate.Struct(v); err != nil {
		return apperror.FromValidator(err)
	}
	return nil
}
