package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-sync/internal/application/dto"
	"github.com/jhoicas/estoque-sync/internal/application/report"
)

// ReportHandler atende as exportações CSV e PDF.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func sendExport(c *fiber.Ctx, export *report.Export, err error) error {
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.FileName+`"`)
	return c.Send(export.Data)
}

// StockCSV godoc
// @Summary      Exportar estoque em CSV
// @Tags         reports
// @Produce      text/csv
// @Success      200  {string}  string  "CSV ponto-e-vírgula com BOM UTF-8"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.csv [get]
func (h *ReportHandler) StockCSV(c *fiber.Ctx) error {
	export, err := h.uc.StockCSV(c.Context())
	return sendExport(c, export, err)
}

// MovementsCSV godoc
// @Summary      Exportar histórico em CSV
// @Description  Mesmo filtro de datas da listagem de movimentações
// @Tags         reports
// @Produce      text/csv
// @Param        from  query     string  false  "Data inicial (AAAA-MM-DD)"
// @Param        to    query     string  false  "Data final inclusiva (AAAA-MM-DD)"
// @Success      200   {string}  string  "CSV ponto-e-vírgula com BOM UTF-8"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/movements.csv [get]
func (h *ReportHandler) MovementsCSV(c *fiber.Ctx) error {
	from, to, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "from/to devem estar no formato AAAA-MM-DD",
		})
	}
	export, err := h.uc.MovementsCSV(c.Context(), from, to)
	return sendExport(c, export, err)
}

// OrdersCSV godoc
// @Summary      Exportar pedidos em CSV
// @Tags         reports
// @Produce      text/csv
// @Success      200  {string}  string  "CSV ponto-e-vírgula com BOM UTF-8"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/orders.csv [get]
func (h *ReportHandler) OrdersCSV(c *fiber.Ctx) error {
	export, err := h.uc.OrdersCSV(c.Context())
	return sendExport(c, export, err)
}

// OrdersPDF godoc
// @Summary      Exportar relatório de pedidos em PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {string}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/orders.pdf [get]
func (h *ReportHandler) OrdersPDF(c *fiber.Ctx) error {
	export, err := h.uc.OrdersPDF(c.Context())
	return sendExport(c, export, err)
}
