// Package analytics contiene los reportes de alquiler: actividad por género,
// tendencia mensual y el resumen del tablero.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/application/rental"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
	"github.com/jhoicas/videoclub-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	summaryMonths    = 6 // meses de la serie del tablero, incluido el actual
	summaryTopGenres = 5
)

// overduePromoter barrido de vencidos previo a contar estados (rental.Reconciler).
type overduePromoter interface {
	PromoteOverdue(ctx context.Context) (int64, error)
}

// ReportsUseCase genera los reportes de alquiler.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Antes de contar
// estados promueve los vencidos para que "overdue" refleje el día de hoy.
type ReportsUseCase struct {
	repo     repository.AnalyticsRepository
	promoter overduePromoter
	clock    rental.Clock
	log      *logger.Logger
}

// NewReportsUseCase construye el caso de uso. promoter puede ser nil.
func NewReportsUseCase(repo repository.AnalyticsRepository, promoter overduePromoter, clock rental.Clock, log *logger.Logger) *ReportsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if clock == nil {
		clock = rental.SystemClock{}
	}
	return &ReportsUseCase{repo: repo, promoter: promoter, clock: clock, log: log.Named("reports")}
}

// GenreStats alquileres, ingresos y promedio por género, de más a menos alquilado.
func (uc *ReportsUseCase) GenreStats(ctx context.Context, in dto.ReportPeriodRequest) (*dto.GenreReportDTO, error) {
	from, to, err := uc.parsePeriod(in)
	if err != nil {
		return nil, err
	}
	uc.refreshOverdue(ctx)

	rows, err := uc.repo.GenreStats(ctx, from, to)
	if err != nil {
		return nil, domain.Persistence(fmt.Errorf("reportes: por género: %w", err))
	}
	return &dto.GenreReportDTO{
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Genres:    toGenreDTOs(rows),
	}, nil
}

// MonthlyTrends actividad por mes calendario en orden cronológico.
func (uc *ReportsUseCase) MonthlyTrends(ctx context.Context, in dto.ReportPeriodRequest) (*dto.MonthlyReportDTO, error) {
	from, to, err := uc.parsePeriod(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.MonthlyTrends(ctx, from, to)
	if err != nil {
		return nil, domain.Persistence(fmt.Errorf("reportes: mensual: %w", err))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })

	months := make([]dto.MonthlyTrendDTO, 0, len(rows))
	for _, r := range rows {
		months = append(months, toMonthDTO(r))
	}
	return &dto.MonthlyReportDTO{StartDate: in.StartDate, EndDate: in.EndDate, Months: months}, nil
}

// Summary tablero: estados, recaudación total, últimos 6 meses y géneros más alquilados.
//
// Tres consultas en paralelo:
//  1. Totals(todo)            → Status + Revenue
//  2. MonthlyTrends(6 meses)  → LastMonths
//  3. GenreStats(todo)        → TopGenres
func (uc *ReportsUseCase) Summary(ctx context.Context) (*dto.RentalDashboardDTO, error) {
	now := uc.clock.Now()
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(summaryMonths - 1), 0)

	uc.refreshOverdue(ctx)

	type totalsResult struct {
		totals repository.RentalTotals
		err    error
	}
	type trendsResult struct {
		rows []repository.MonthlyRentalTrend
		err  error
	}
	type genresResult struct {
		rows []repository.GenreRentalStats
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	trendsCh := make(chan trendsResult, 1)
	genresCh := make(chan genresResult, 1)

	go func() {
		t, err := uc.repo.Totals(ctx, nil, nil)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		rows, err := uc.repo.MonthlyTrends(ctx, &firstMonth, nil)
		trendsCh <- trendsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.GenreStats(ctx, nil, nil)
		genresCh <- genresResult{rows, err}
	}()

	totals := <-totalsCh
	trends := <-trendsCh
	genres := <-genresCh

	if totals.err != nil {
		return nil, domain.Persistence(fmt.Errorf("tablero: totales: %w", totals.err))
	}
	if trends.err != nil {
		return nil, domain.Persistence(fmt.Errorf("tablero: meses: %w", trends.err))
	}
	if genres.err != nil {
		return nil, domain.Persistence(fmt.Errorf("tablero: géneros: %w", genres.err))
	}

	t := totals.totals
	top := toGenreDTOs(genres.rows)
	if len(top) > summaryTopGenres {
		top = top[:summaryTopGenres]
	}
	return &dto.RentalDashboardDTO{
		Status: dto.StatusCountsDTO{
			Active:   t.Active,
			Overdue:  t.Overdue,
			Returned: t.Returned,
			Total:    t.Active + t.Overdue + t.Returned,
		},
		Revenue: dto.RevenueDTO{
			Rentals:  t.RentalRevenue.Round(2),
			LateFees: t.LateFeeRevenue.Round(2),
			Total:    t.RentalRevenue.Add(t.LateFeeRevenue).Round(2),
		},
		LastMonths: fillMonths(firstMonth, summaryMonths, trends.rows),
		TopGenres:  top,
		DateLabel:  monthLabel(now),
	}, nil
}

// refreshOverdue promueve vencidos; si falla el reporte sale con los estados guardados.
func (uc *ReportsUseCase) refreshOverdue(ctx context.Context) {
	if uc.promoter == nil {
		return
	}
	if _, err := uc.promoter.PromoteOverdue(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("reporte sin barrido de vencidos")
	}
}

// parsePeriod convierte start_date/end_date (inclusivos) en [from, to) sobre rental_date.
// Un extremo vacío queda abierto.
func (uc *ReportsUseCase) parsePeriod(in dto.ReportPeriodRequest) (from, to *time.Time, err error) {
	loc := uc.clock.Now().Location()
	if in.StartDate != "" {
		start, err := time.ParseInLocation(dto.DateLayout, in.StartDate, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("start_date inválido: %w", domain.ErrInvalidInput)
		}
		from = &start
	}
	if in.EndDate != "" {
		end, err := time.ParseInLocation(dto.DateLayout, in.EndDate, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("end_date inválido: %w", domain.ErrInvalidInput)
		}
		end = end.AddDate(0, 0, 1)
		to = &end
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, fmt.Errorf("start_date no puede ser posterior a end_date: %w", domain.ErrInvalidInput)
	}
	return from, to, nil
}

func toGenreDTOs(rows []repository.GenreRentalStats) []dto.GenreStatsDTO {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalRentals != rows[j].TotalRentals {
			return rows[i].TotalRentals > rows[j].TotalRentals
		}
		return rows[i].Genre < rows[j].Genre
	})
	out := make([]dto.GenreStatsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.GenreStatsDTO{
			Genre:          r.Genre,
			TotalRentals:   r.TotalRentals,
			ActiveRentals:  r.ActiveRentals,
			OverdueRentals: r.OverdueRentals,
			TotalRevenue:   r.TotalRevenue.Round(2),
			AvgRevenue:     average(r.TotalRevenue, r.TotalRentals),
		})
	}
	return out
}

func toMonthDTO(r repository.MonthlyRentalTrend) dto.MonthlyTrendDTO {
	label := r.Month
	if t, err := time.Parse("2006-01", r.Month); err == nil {
		label = monthLabel(t)
	}
	return dto.MonthlyTrendDTO{
		Month:           r.Month,
		Label:           label,
		RentalCount:     r.RentalCount,
		UniqueCustomers: r.UniqueCustomers,
		UniqueMovies:    r.UniqueMovies,
		TotalRevenue:    r.TotalRevenue.Round(2),
		AvgRevenue:      average(r.TotalRevenue, r.RentalCount),
	}
}

// fillMonths devuelve n meses desde first; los meses sin alquileres van en cero.
func fillMonths(first time.Time, n int, rows []repository.MonthlyRentalTrend) []dto.MonthlyTrendDTO {
	byMonth := make(map[string]repository.MonthlyRentalTrend, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}
	out := make([]dto.MonthlyTrendDTO, 0, n)
	for i := 0; i < n; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		r, ok := byMonth[key]
		if !ok {
			r = repository.MonthlyRentalTrend{Month: key, TotalRevenue: decimal.Zero}
		}
		out = append(out, toMonthDTO(r))
	}
	return out
}

func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
