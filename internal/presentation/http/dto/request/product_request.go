package request

import "github.com/shopspring/decimal"

// UnitRequest is a sale unit of a product
type UnitRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Barcode  string          `json:"barcode"`
}

// ProductRequest represents a product create/update request
type ProductRequest struct {
	ID         string          `json:"id" binding:"required,max=64"`
	Name       string          `json:"name" binding:"required,max=255"`
	Category   string          `json:"category"`
	GroupID    string          `json:"group_id"`
	SupplierID string          `json:"supplier_id"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      decimal.Decimal `json:"stock"`
	ImageURL   string          `json:"image_url"`
	Units      []UnitRequest   `json:"units" binding:"dive"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search  string `form:"search"`
	GroupID string `form:"group_id"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=name stock"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// GroupRequest represents a product group create/update request
type GroupRequest struct {
	ID   string `json:"id" binding:"omitempty,max=64"`
	Name string `json:"name" binding:"required,max=255"`
}

// SupplierRequest represents a supplier create/update request
type SupplierRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	ContactPerson string `json:"contact_person"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
}

// SalesmanRequest represents a salesman create/update request
type SalesmanRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status" binding:"omitempty,oneof=Aktif Non-Aktif"`
}

// BankRequest represents a bank account create/update request
type BankRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	Type          string `json:"type"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
}
