package entity

import "sort"

// Document is the whole persisted store state. It is read and written as a
// single unit.
type Document struct {
	Products              []Product              `json:"products"`
	ProductGroups         []ProductGroup         `json:"product_groups"`
	Suppliers             []Supplier             `json:"suppliers"`
	Sales                 []Sale                 `json:"sales"`
	Purchases             []Purchase             `json:"purchases"`
	Users                 []User                 `json:"users"`
	Members               []Member               `json:"members"`
	Salesmen              []Salesman             `json:"salesmen"`
	Banks                 []Bank                 `json:"banks"`
	SalesReturns          []SalesReturn          `json:"sales_returns"`
	StockAdjustments      []StockAdjustment      `json:"stock_adjustments"`
	CashTransactions      []CashTransaction      `json:"cash_transactions"`
	SuspendedTransactions []SuspendedTransaction `json:"suspended_transactions"`
}

// EnsureCollections replaces nil collections with empty ones so that a
// document written by an older version still loads.
func (d *Document) EnsureCollections() {
	if d.Products == nil {
		d.Products = []Product{}
	}
	if d.ProductGroups == nil {
		d.ProductGroups = []ProductGroup{}
	}
	if d.Suppliers == nil {
		d.Suppliers = []Supplier{}
	}
	if d.Sales == nil {
		d.Sales = []Sale{}
	}
	if d.Purchases == nil {
		d.Purchases = []Purchase{}
	}
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Members == nil {
		d.Members = []Member{}
	}
	if d.Salesmen == nil {
		d.Salesmen = []Salesman{}
	}
	if d.Banks == nil {
		d.Banks = []Bank{}
	}
	if d.SalesReturns == nil {
		d.SalesReturns = []SalesReturn{}
	}
	if d.StockAdjustments == nil {
		d.StockAdjustments = []StockAdjustment{}
	}
	if d.CashTransactions == nil {
		d.CashTransactions = []CashTransaction{}
	}
	if d.SuspendedTransactions == nil {
		d.SuspendedTransactions = []SuspendedTransaction{}
	}
}

// SortSales orders sales newest first.
func (d *Document) SortSales() {
	sort.SliceStable(d.Sales, func(i, j int) bool {
		return d.Sales[i].Date.After(d.Sales[j].Date)
	})
}

// FindProduct returns the product with the given PLU.
func (d *Document) FindProduct(id string) (*Product, bool) {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i], true
		}
	}
	return nil, false
}

// FindMember returns the member with the given id.
func (d *Document) FindMember(id string) (*Member, bool) {
	for i := range d.Members {
		if d.Members[i].ID == id {
			return &d.Members[i], true
		}
	}
	return nil, false
}
