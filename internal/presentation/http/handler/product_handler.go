package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

const defaultSearchLimit = 20

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	catalogService *service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{productService: productService, catalogService: catalogService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), &service.ProductFilter{
		Pagination: paginationParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		GroupID:    filter.GroupID,
		SortBy:     filter.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Search handles the cashier's product lookup by PLU, barcode or name
func (h *ProductHandler) Search(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSearchLimit)))
	if err != nil || limit <= 0 {
		limit = defaultSearchLimit
	}

	products, err := h.catalogService.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetLowStock handles getting low stock products
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	threshold, err := decimal.NewFromString(c.DefaultQuery("threshold", "5"))
	if err != nil {
		response.BadRequest(c, "Invalid threshold")
		return
	}

	products, err := h.productService.GetLowStockProducts(c.Request.Context(), threshold)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// Import handles importing products from an XLSX upload
func (h *ProductHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Failed to open file")
		return
	}
	defer f.Close()

	rows, err := service.ParseProductSheet(f)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.productService.ImportProducts(c.Request.Context(), rows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products imported", result)
}

func productInput(req *request.ProductRequest) *service.ProductInput {
	units := make([]entity.Unit, 0, len(req.Units))
	for _, u := range req.Units {
		units = append(units, entity.Unit{Name: u.Name, Quantity: u.Quantity, Price: u.Price, Barcode: u.Barcode})
	}
	return &service.ProductInput{
		ID:         req.ID,
		Name:       req.Name,
		Category:   req.Category,
		GroupID:    req.GroupID,
		SupplierID: req.SupplierID,
		Price:      req.Price,
		Cost:       req.Cost,
		Stock:      req.Stock,
		ImageURL:   req.ImageURL,
		Units:      units,
	}
}

// MasterDataHandler handles product groups, suppliers, salesmen and banks
type MasterDataHandler struct {
	masterService *service.MasterDataService
}

// NewMasterDataHandler creates a new master data handler
func NewMasterDataHandler(masterService *service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{masterService: masterService}
}

// ListGroups handles listing product groups
func (h *MasterDataHandler) ListGroups(c *gin.Context) {
	groups, err := h.masterService.ListGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product groups retrieved successfully", groups)
}

// SaveGroup handles creating or renaming a product group
func (h *MasterDataHandler) SaveGroup(c *gin.Context) {
	var req request.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}

	group, err := h.masterService.SaveGroup(c.Request.Context(), entity.ProductGroup{ID: req.ID, Name: req.Name})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product group saved successfully", group)
}

// DeleteGroup handles deleting a product group
func (h *MasterDataHandler) DeleteGroup(c *gin.Context) {
	if err := h.masterService.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSuppliers handles listing suppliers
func (h *MasterDataHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.masterService.ListSuppliers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Suppliers retrieved successfully", suppliers)
}

// SaveSupplier handles creating (POST) or updating (PUT /:id) a supplier
func (h *MasterDataHandler) SaveSupplier(c *gin.Context) {
	var req request.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	supplier, err := h.masterService.SaveSupplier(c.Request.Context(), entity.Supplier{
		ID:            c.Param("id"),
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Address:       req.Address,
		Phone:         req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Supplier saved successfully", supplier)
}

// DeleteSupplier handles deleting a supplier
func (h *MasterDataHandler) DeleteSupplier(c *gin.Context) {
	if err := h.masterService.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSalesmen handles listing salesmen
func (h *MasterDataHandler) ListSalesmen(c *gin.Context) {
	salesmen, err := h.masterService.ListSalesmen(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Salesmen retrieved successfully", salesmen)
}

// SaveSalesman handles creating or updating a salesman
func (h *MasterDataHandler) SaveSalesman(c *gin.Context) {
	var req request.SalesmanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	salesman, err := h.masterService.SaveSalesman(c.Request.Context(), entity.Salesman{
		ID:      c.Param("id"),
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  enum.UserStatus(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Salesman saved successfully", salesman)
}

// ListBanks handles listing banks and e-wallets
func (h *MasterDataHandler) ListBanks(c *gin.Context) {
	banks, err := h.masterService.ListBanks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Banks retrieved successfully", banks)
}

// SaveBank handles creating or updating a bank or e-wallet
func (h *MasterDataHandler) SaveBank(c *gin.Context) {
	var req request.BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	bank, err := h.masterService.SaveBank(c.Request.Context(), entity.Bank{
		ID:            c.Param("id"),
		Name:          req.Name,
		Type:          req.Type,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bank saved successfully", bank)
}
