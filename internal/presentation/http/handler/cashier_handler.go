package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// CashierHandler drives the register: scanning, line edits, members,
// points, suspend/recall and payment.
type CashierHandler struct {
	cashierService *service.CashierService
	printerService *service.PrinterService
}

// NewCashierHandler creates a new cashier handler
func NewCashierHandler(cashierService *service.CashierService, printerService *service.PrinterService) *CashierHandler {
	return &CashierHandler{cashierService: cashierService, printerService: printerService}
}

// Get returns the register snapshot
func (h *CashierHandler) Get(c *gin.Context) {
	response.OK(c, "Register retrieved successfully", h.cashierService.Snapshot())
}

// Scan handles a scanner or keyboard token
func (h *CashierHandler) Scan(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	snapshot, err := h.cashierService.Scan(c.Request.Context(), req.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item scanned", snapshot)
}

// AddLine adds a product picked from the catalog
func (h *CashierHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Quantity.IsZero() {
		req.Quantity = decimal.NewFromInt(1)
	}

	snapshot, err := h.cashierService.AddLine(c.Request.Context(), &service.AddLineInput{
		ProductID: req.ProductID,
		UnitName:  req.UnitName,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", snapshot)
}

// UpdateLine sets the quantity or discount of a line
func (h *CashierHandler) UpdateLine(c *gin.Context) {
	var req request.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	snapshot, err := h.cashierService.UpdateLine(req.ProductID, req.UnitName, entity.CartField(req.Field), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line updated", snapshot)
}

// ChangeUnit switches a line to another unit
func (h *CashierHandler) ChangeUnit(c *gin.Context) {
	var req request.ChangeUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	snapshot, err := h.cashierService.ChangeUnit(req.ProductID, req.FromUnit, req.ToUnit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Unit changed", snapshot)
}

// RemoveLine deletes a line
func (h *CashierHandler) RemoveLine(c *gin.Context) {
	var req request.RemoveLineRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	snapshot, err := h.cashierService.RemoveLine(req.ProductID, req.UnitName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed", snapshot)
}

// SelectMember attaches a member
func (h *CashierHandler) SelectMember(c *gin.Context) {
	var req request.SelectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	snapshot, err := h.cashierService.SelectMember(c.Request.Context(), req.MemberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Member selected", snapshot)
}

// ClearMember detaches the member
func (h *CashierHandler) ClearMember(c *gin.Context) {
	response.OK(c, "Member cleared", h.cashierService.ClearMember())
}

// RedeemPoints converts member points into a discount line
func (h *CashierHandler) RedeemPoints(c *gin.Context) {
	var req request.RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	snapshot, err := h.cashierService.RedeemPoints(c.Request.Context(), req.Points)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Points redeemed", snapshot)
}

// CancelRedemption removes the points line
func (h *CashierHandler) CancelRedemption(c *gin.Context) {
	response.OK(c, "Redemption cancelled", h.cashierService.CancelRedemption())
}

// Reset clears the register
func (h *CashierHandler) Reset(c *gin.Context) {
	response.OK(c, "Register cleared", h.cashierService.Reset())
}

// Suspend parks the current transaction
func (h *CashierHandler) Suspend(c *gin.Context) {
	held, err := h.cashierService.Suspend(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Transaction suspended", held)
}

// ListSuspended lists parked transactions
func (h *CashierHandler) ListSuspended(c *gin.Context) {
	held, err := h.cashierService.ListSuspended(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Suspended transactions retrieved successfully", held)
}

// Recall restores a parked transaction
func (h *CashierHandler) Recall(c *gin.Context) {
	snapshot, err := h.cashierService.Recall(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transaction recalled", snapshot)
}

// RequestPayment moves the register to payment
func (h *CashierHandler) RequestPayment(c *gin.Context) {
	result, err := h.cashierService.RequestPayment(c.Request.Context(), GetCashierName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Settled {
		response.Created(c, "Sale settled", result)
		return
	}
	response.OK(c, "Awaiting payment", result)
}

// ConfirmPayment settles the pending transaction
func (h *CashierHandler) ConfirmPayment(c *gin.Context) {
	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.cashierService.ConfirmPayment(c.Request.Context(), &service.ConfirmPaymentInput{
		Tendered: req.Tendered,
		Method:   enum.PaymentMethod(req.Method),
		Detail:   req.Detail,
		Cashier:  GetCashierName(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale settled", result)
}

// CancelPayment returns the register to building
func (h *CashierHandler) CancelPayment(c *gin.Context) {
	snapshot, err := h.cashierService.CancelPayment()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment cancelled", snapshot)
}

// Reprint re-renders the receipt of a stored sale on the thermal printer
func (h *CashierHandler) Reprint(c *gin.Context) {
	receipt, err := h.printerService.ReprintSale(c.Request.Context(), c.Param("invoice"))
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt reprinted", gin.H{"receipt": receipt})
}
