package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const topProductsLimit = 5

// ReportService builds read-only sales reports
type ReportService struct {
	docs *Documents
}

// NewReportService creates a new report service
func NewReportService(docs *Documents) *ReportService {
	return &ReportService{docs: docs}
}

// DateRange bounds a report. Zero values leave that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

func salesIn(doc *entity.Document, r DateRange) []entity.Sale {
	var out []entity.Sale
	for _, s := range doc.Sales {
		if r.contains(s.Date) {
			out = append(out, s)
		}
	}
	return out
}

// CashierTotal is one row of the cashier report
type CashierTotal struct {
	CashierName      string          `json:"cashier_name"`
	TransactionCount int             `json:"transaction_count"`
	TotalSales       decimal.Decimal `json:"total_sales"`
}

// CashierReport lists sales per cashier
type CashierReport struct {
	Cashiers          []CashierTotal  `json:"cashiers"`
	TotalTransactions int             `json:"total_transactions"`
	TotalSales        decimal.Decimal `json:"total_sales"`
}

// GetCashierReport totals sales per register user (Admin or Kasir), matched
// by full name. Users without sales are left out.
func (s *ReportService) GetCashierReport(ctx context.Context, r DateRange) (*CashierReport, error) {
	report := &CashierReport{Cashiers: []CashierTotal{}, TotalSales: decimal.Zero}
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		sales := salesIn(doc, r)
		for _, u := range doc.Users {
			if !u.Role.CanOperateRegister() {
				continue
			}
			row := CashierTotal{CashierName: u.FullName, TotalSales: decimal.Zero}
			for _, sale := range sales {
				if sale.Cashier == u.FullName {
					row.TransactionCount++
					row.TotalSales = row.TotalSales.Add(sale.Total)
				}
			}
			if row.TransactionCount == 0 {
				continue
			}
			report.Cashiers = append(report.Cashiers, row)
			report.TotalTransactions += row.TransactionCount
			report.TotalSales = report.TotalSales.Add(row.TotalSales)
		}
		return nil
	})
	return report, err
}

// DailySales is the total of one calendar day
type DailySales struct {
	Date       string          `json:"date"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// TopProduct ranks a product by quantity sold
type TopProduct struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// GroupSales is revenue per product group
type GroupSales struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// SalesChart is the dashboard summary of a period
type SalesChart struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	Daily        []DailySales    `json:"daily"`
	TopProducts  []TopProduct    `json:"top_products"`
	ByGroup      []GroupSales    `json:"by_group"`
}

// GetSalesChart aggregates revenue, cost and profit for the period, with
// daily totals, the five best sellers and revenue per group.
func (s *ReportService) GetSalesChart(ctx context.Context, r DateRange) (*SalesChart, error) {
	chart := &SalesChart{Revenue: decimal.Zero, Cost: decimal.Zero}
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		sales := salesIn(doc, r)
		chart.Transactions = len(sales)

		daily := map[string]decimal.Decimal{}
		top := map[string]*TopProduct{}
		groups := map[string]decimal.Decimal{}

		for _, sale := range sales {
			chart.Revenue = chart.Revenue.Add(sale.Total)
			day := sale.Date.Format("2006-01-02")
			daily[day] = daily[day].Add(sale.Total)

			for _, item := range sale.Items {
				if item.IsPointsDiscount() {
					continue
				}
				product, ok := doc.FindProduct(item.ProductID)
				if !ok {
					continue
				}
				chart.Cost = chart.Cost.Add(product.Cost.Mul(item.Quantity).Mul(item.UnitQuantity))

				tp, ok := top[item.ProductID]
				if !ok {
					tp = &TopProduct{ID: item.ProductID, Name: item.ProductName, QuantitySold: decimal.Zero, TotalRevenue: decimal.Zero}
					top[item.ProductID] = tp
				}
				tp.QuantitySold = tp.QuantitySold.Add(item.Quantity)
				tp.TotalRevenue = tp.TotalRevenue.Add(item.LineTotal())
				groups[product.GroupID] = groups[product.GroupID].Add(item.LineTotal())
			}
		}
		chart.Profit = chart.Revenue.Sub(chart.Cost)

		for day, total := range daily {
			chart.Daily = append(chart.Daily, DailySales{Date: day, TotalSales: total})
		}
		sort.Slice(chart.Daily, func(i, j int) bool { return chart.Daily[i].Date < chart.Daily[j].Date })

		for _, tp := range top {
			chart.TopProducts = append(chart.TopProducts, *tp)
		}
		sort.Slice(chart.TopProducts, func(i, j int) bool {
			if chart.TopProducts[i].QuantitySold.Equal(chart.TopProducts[j].QuantitySold) {
				return chart.TopProducts[i].ID < chart.TopProducts[j].ID
			}
			return chart.TopProducts[i].QuantitySold.GreaterThan(chart.TopProducts[j].QuantitySold)
		})
		if len(chart.TopProducts) > topProductsLimit {
			chart.TopProducts = chart.TopProducts[:topProductsLimit]
		}

		names := map[string]string{}
		for _, g := range doc.ProductGroups {
			names[g.ID] = g.Name
		}
		for id, total := range groups {
			name, ok := names[id]
			if !ok {
				name = "Lainnya"
			}
			chart.ByGroup = append(chart.ByGroup, GroupSales{Name: name, Value: total})
		}
		sort.Slice(chart.ByGroup, func(i, j int) bool { return chart.ByGroup[i].Value.GreaterThan(chart.ByGroup[j].Value) })
		return nil
	})
	return chart, err
}

// ListSales returns sales in the period, newest first
func (s *ReportService) ListSales(ctx context.Context, r DateRange, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	var sales []entity.Sale
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		sales = salesIn(doc, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date.After(sales[j].Date) })
	return pagination.Paginate(sales, params), nil
}

var salesSheetHeader = []interface{}{
	"Invoice", "Tanggal", "Pelanggan", "Kasir", "Metode", "PLU", "Produk", "Satuan", "Qty", "Harga", "Diskon", "Subtotal",
}

// ExportSales writes one row per sale line of the period to an XLSX workbook.
func (s *ReportService) ExportSales(ctx context.Context, r DateRange) (*excelize.File, error) {
	var sales []entity.Sale
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		sales = salesIn(doc, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	const sheet = "Penjualan"
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &salesSheetHeader); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	row := 2
	for _, sale := range sales {
		for _, item := range sale.Items {
			qty, _ := item.Quantity.Float64()
			price, _ := item.Price.Float64()
			disc, _ := item.DiscountAmount.Float64()
			total, _ := item.LineTotal().Float64()
			values := []interface{}{
				sale.InvoiceID,
				sale.Date.Format("2006-01-02 15:04"),
				sale.Customer,
				sale.Cashier,
				sale.PaymentMethod.Label(sale.PaymentDetail),
				item.ProductID,
				item.ProductName,
				item.UnitName,
				qty, price, disc, total,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			row++
		}
	}
	return f, nil
}
