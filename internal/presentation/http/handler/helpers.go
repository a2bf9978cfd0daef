package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/pagination"
)

// Context keys set by the optional auth middleware
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextFullName = "full_name"
	ContextRole     = "user_role"
)

// GetCashierName returns the full name of the logged-in user, or "" when the
// request carries no valid session token.
func GetCashierName(c *gin.Context) string {
	name, exists := c.Get(ContextFullName)
	if !exists {
		return ""
	}
	s, _ := name.(string)
	return s
}

func paginationParams(page, perPage int) *pagination.PaginationParams {
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

// parseDateRange turns YYYY-MM-DD bounds into a range covering both days
// completely, in local time.
func parseDateRange(req *request.DateRangeRequest) (service.DateRange, error) {
	var r service.DateRange
	if req.From != "" {
		from, err := time.ParseInLocation("2006-01-02", req.From, time.Local)
		if err != nil {
			return r, apperror.NewFieldError("from", "must be YYYY-MM-DD")
		}
		r.From = from
	}
	if req.To != "" {
		to, err := time.ParseInLocation("2006-01-02", req.To, time.Local)
		if err != nil {
			return r, apperror.NewFieldError("to", "must be YYYY-MM-DD")
		}
		r.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return r, apperror.NewFieldError("to", "must not be before from")
	}
	return r, nil
}
