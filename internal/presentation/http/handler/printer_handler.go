package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/retail-pos/pkg/apperror"
)

// PrinterHandler exposes the receipt printer.
type PrinterHandler struct {
	printerService *service.PrinterService
}

func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus reports the configured printer type and whether it answers.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// TestPrint prints a two-item sample receipt with the current store header.
// Without a configured printer the receipt is only returned.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	status := h.printerService.GetStatus()
	receipt, err := h.printerService.TestPrint()

	switch {
	case !status.Configured:
		response.OK(c, "No printer configured, receipt not printed", gin.H{"receipt": receipt})
	case err != nil:
		log.Warn().Err(err).Str("printer", status.Type).Msg("Test print failed")
		response.Error(c, apperror.NewAppError(http.StatusServiceUnavailable, "Printer did not accept the test page"))
	default:
		response.OK(c, "Test page sent to printer", gin.H{"receipt": receipt})
	}
}
