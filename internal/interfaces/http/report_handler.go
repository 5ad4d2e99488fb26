package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/videoclub-api/internal/application/dto"
)

// reportsService reportes de alquiler (analytics.ReportsUseCase).
type reportsService interface {
	GenreStats(ctx context.Context, in dto.ReportPeriodRequest) (*dto.GenreReportDTO, error)
	MonthlyTrends(ctx context.Context, in dto.ReportPeriodRequest) (*dto.MonthlyReportDTO, error)
	Summary(ctx context.Context) (*dto.RentalDashboardDTO, error)
}

// ReportHandler maneja los endpoints de reportes.
type ReportHandler struct {
	uc reportsService
}

// NewReportHandler construye el handler.
func NewReportHandler(uc reportsService) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Genres godoc
// @Summary      Alquileres por género
// @Description  Total, activos, vencidos, ingresos y promedio por alquiler, de más a menos alquilado.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: sin límite."
// @Param        end_date    query  string  false  "Fin del período, inclusivo (YYYY-MM-DD). Default: sin límite."
// @Success      200  {object}  dto.GenreReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/genres [get]
func (h *ReportHandler) Genres(c *fiber.Ctx) error {
	var req dto.ReportPeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	out, err := h.uc.GenreStats(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Monthly godoc
// @Summary      Tendencia mensual de alquileres
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin del período, inclusivo (YYYY-MM-DD)"
// @Success      200  {object}  dto.MonthlyReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	var req dto.ReportPeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	out, err := h.uc.MonthlyTrends(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Tablero de alquileres
// @Description  Estados, recaudación, últimos 6 meses y géneros más alquilados.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RentalDashboardDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
