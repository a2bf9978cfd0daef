package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

const maxBackupSize = 64 << 20

// SettingsHandler handles store settings, backups and price tags
type SettingsHandler struct {
	settingsService *service.SettingsService
	backupService   *service.BackupService
	priceTagService *service.PriceTagService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService, backupService *service.BackupService, priceTagService *service.PriceTagService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		backupService:   backupService,
		priceTagService: priceTagService,
	}
}

// GetSettings retrieves the store settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates the store settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		StoreName:     req.StoreName,
		Address:       req.Address,
		City:          req.City,
		Province:      req.Province,
		Phone:         req.Phone,
		Footer:        req.Footer,
		PointsEnabled: req.PointsEnabled,
		RpPerPoint:    req.RpPerPoint,
		PointValue:    req.PointValue,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}

// ReloadSettings re-reads the settings from the store
func (h *SettingsHandler) ReloadSettings(c *gin.Context) {
	settings, err := h.settingsService.Reload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings reloaded successfully", settings)
}

// Backup downloads the whole store document as JSON
func (h *SettingsHandler) Backup(c *gin.Context) {
	backup, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, backup.FileName, response.ContentTypeJSON, backup.Data)
}

// Restore replaces the store document with an uploaded backup
func (h *SettingsHandler) Restore(c *gin.Context) {
	body := c.Request.Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			response.BadRequest(c, "Failed to open file")
			return
		}
		defer f.Close()
		body = f
	}

	data, err := io.ReadAll(io.LimitReader(body, maxBackupSize))
	if err != nil {
		response.BadRequest(c, "Failed to read backup")
		return
	}

	if err := h.backupService.Restore(c.Request.Context(), data); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Backup restored successfully", nil)
}

// PriceTags renders an A4 sheet of price tags as PDF
func (h *SettingsHandler) PriceTags(c *gin.Context) {
	var req request.PriceTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	pdf, err := h.priceTagService.RenderPDF(c.Request.Context(), req.ProductIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Inline(c, "pricetags.pdf", response.ContentTypePDF, pdf)
}
