package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

// InventoryHandler handles sales returns, stock adjustments and cash entries
type InventoryHandler struct {
	inventoryService *service.InventoryService
	cashService      *service.CashService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService, cashService *service.CashService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, cashService: cashService}
}

// FindSale looks a sale up by invoice for the return form
func (h *InventoryHandler) FindSale(c *gin.Context) {
	sale, err := h.inventoryService.FindSale(c.Request.Context(), c.Param("invoice"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// ListReturns handles listing sales returns
func (h *InventoryHandler) ListReturns(c *gin.Context) {
	returns, err := h.inventoryService.ListReturns(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Returns retrieved successfully", returns)
}

// CreateReturn handles recording a sales return
func (h *InventoryHandler) CreateReturn(c *gin.Context) {
	var req request.SalesReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.ReturnItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.ReturnItemInput{ProductID: item.ProductID, UnitName: item.UnitName, Quantity: item.Quantity})
	}
	ret, err := h.inventoryService.CreateReturn(c.Request.Context(), &service.SalesReturnInput{
		InvoiceID: req.InvoiceID,
		Reason:    req.Reason,
		Items:     items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Return recorded successfully", ret)
}

// ListAdjustments handles listing stock adjustments
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	adjustments, err := h.inventoryService.ListAdjustments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock adjustments retrieved successfully", adjustments)
}

// CreateAdjustment handles recording a stock count
func (h *InventoryHandler) CreateAdjustment(c *gin.Context) {
	var req request.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.StockCountInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.StockCountInput{ProductID: item.ProductID, PhysicalStock: item.PhysicalStock})
	}
	adjustment, err := h.inventoryService.CreateAdjustment(c.Request.Context(), &service.StockAdjustmentInput{
		Notes: req.Notes,
		Items: items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Stock adjustment recorded successfully", adjustment)
}

// ListCash handles listing cash transactions with totals
func (h *InventoryHandler) ListCash(c *gin.Context) {
	summary, err := h.cashService.ListTransactions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cash transactions retrieved successfully", summary)
}

// CreateCash handles recording a cash in/out entry
func (h *InventoryHandler) CreateCash(c *gin.Context) {
	var req request.CashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.cashService.CreateTransaction(c.Request.Context(), &service.CashInput{
		Type:        enum.CashType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		Cashier:     GetCashierName(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Cash transaction recorded successfully", tx)
}
