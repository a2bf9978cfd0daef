package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

// ReportHandler handles sales reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func bindDateRange(c *gin.Context) (*request.DateRangeRequest, service.DateRange, bool) {
	var req request.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return nil, service.DateRange{}, false
	}
	r, err := parseDateRange(&req)
	if err != nil {
		response.Error(c, err)
		return nil, service.DateRange{}, false
	}
	return &req, r, true
}

// Cashiers returns sales per cashier
func (h *ReportHandler) Cashiers(c *gin.Context) {
	_, r, ok := bindDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetCashierReport(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cashier report retrieved successfully", report)
}

// Sales lists sales in the period
func (h *ReportHandler) Sales(c *gin.Context) {
	req, r, ok := bindDateRange(c)
	if !ok {
		return
	}

	result, err := h.reportService.ListSales(c.Request.Context(), r, paginationParams(req.Page, req.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Chart returns revenue, profit, daily totals and best sellers
func (h *ReportHandler) Chart(c *gin.Context) {
	_, r, ok := bindDateRange(c)
	if !ok {
		return
	}

	chart, err := h.reportService.GetSalesChart(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales chart retrieved successfully", chart)
}

// Export downloads the sales lines of the period as XLSX
func (h *ReportHandler) Export(c *gin.Context) {
	_, r, ok := bindDateRange(c)
	if !ok {
		return
	}

	f, err := h.reportService.ExportSales(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Error().Err(err).Msg("Failed to write sales export")
		response.Error(c, err)
		return
	}

	name := fmt.Sprintf("penjualan_%s.xlsx", time.Now().Format("2006-01-02"))
	response.Attachment(c, name, response.ContentTypeXLSX, buf.Bytes())
}
