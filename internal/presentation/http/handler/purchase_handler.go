package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/retail-pos/pkg/pagination"
)

// PurchaseHandler handles goods receiving HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), paginationParams(params.Page, params.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// Get handles getting a single purchase
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), c.Param("po"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Create handles receiving a purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), purchaseInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Purchase created successfully", purchase)
}

// Update handles correcting a received purchase
func (h *PurchaseHandler) Update(c *gin.Context) {
	var req request.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	purchase, err := h.purchaseService.UpdatePurchase(c.Request.Context(), c.Param("po"), purchaseInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase updated successfully", purchase)
}

func purchaseInput(req *request.PurchaseRequest) *service.PurchaseInput {
	items := make([]service.PurchaseItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.PurchaseItemInput{
			ProductID:     item.ProductID,
			UnitName:      item.UnitName,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			Discount:      item.Discount,
			SellingPrice:  item.SellingPrice,
		})
	}
	return &service.PurchaseInput{
		PONumber:      req.PONumber,
		Date:          req.Date,
		SupplierID:    req.SupplierID,
		PaymentMethod: req.PaymentMethod,
		PPN:           req.PPN,
		Notes:         req.Notes,
		Items:         items,
	}
}
