package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/videoclub-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// periodFilter acota rental_date; $1/$2 NULL dejan el extremo abierto.
const periodFilter = `($1::timestamptz IS NULL OR r.rental_date >= $1)
	  AND ($2::timestamptz IS NULL OR r.rental_date < $2)`

// AnalyticsRepo consultas de solo lectura para reportes de alquiler.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de reportes.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GenreStats agrupa alquileres e ingresos por género. Las películas sin género van a "Unknown".
func (r *AnalyticsRepo) GenreStats(ctx context.Context, from, to *time.Time) ([]repository.GenreRentalStats, error) {
	query := `
	SELECT
	    COALESCE(NULLIF(m.genre, ''), 'Unknown')              AS genre,
	    COUNT(*)                                              AS total_rentals,
	    COUNT(*) FILTER (WHERE r.status = 'active')           AS active_rentals,
	    COUNT(*) FILTER (WHERE r.status = 'overdue')          AS overdue_rentals,
	    COALESCE(SUM(r.total_charge), 0)                      AS total_revenue
	FROM rentals r
	JOIN movies m ON m.id = r.movie_id
	WHERE ` + periodFilter + `
	GROUP BY 1
	ORDER BY total_rentals DESC, genre`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GenreStats: %w", err)
	}
	defer rows.Close()

	results := []repository.GenreRentalStats{}
	for rows.Next() {
		var row repository.GenreRentalStats
		if err := rows.Scan(&row.Genre, &row.TotalRentals, &row.ActiveRentals, &row.OverdueRentals, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("analytics.GenreStats scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GenreStats: %w", err)
	}
	return results, nil
}

// MonthlyTrends agrupa por mes calendario de rental_date, en orden cronológico.
func (r *AnalyticsRepo) MonthlyTrends(ctx context.Context, from, to *time.Time) ([]repository.MonthlyRentalTrend, error) {
	query := `
	SELECT
	    to_char(r.rental_date, 'YYYY-MM')     AS month,
	    COUNT(*)                              AS rental_count,
	    COUNT(DISTINCT r.customer_id)         AS unique_customers,
	    COUNT(DISTINCT r.movie_id)            AS unique_movies,
	    COALESCE(SUM(r.total_charge), 0)      AS total_revenue
	FROM rentals r
	WHERE ` + periodFilter + `
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.MonthlyTrends: %w", err)
	}
	defer rows.Close()

	results := []repository.MonthlyRentalTrend{}
	for rows.Next() {
		var row repository.MonthlyRentalTrend
		if err := rows.Scan(&row.Month, &row.RentalCount, &row.UniqueCustomers, &row.UniqueMovies, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("analytics.MonthlyTrends scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.MonthlyTrends: %w", err)
	}
	return results, nil
}

// Totals cuenta alquileres por estado y suma lo recaudado en cargos y recargos.
func (r *AnalyticsRepo) Totals(ctx context.Context, from, to *time.Time) (repository.RentalTotals, error) {
	query := `
	SELECT
	    COUNT(*) FILTER (WHERE r.status = 'active'),
	    COUNT(*) FILTER (WHERE r.status = 'overdue'),
	    COUNT(*) FILTER (WHERE r.status = 'returned'),
	    COALESCE(SUM(r.total_charge), 0),
	    COALESCE(SUM(r.late_fee), 0)
	FROM rentals r
	WHERE ` + periodFilter

	var t repository.RentalTotals
	err := r.q.QueryRow(ctx, query, from, to).Scan(&t.Active, &t.Overdue, &t.Returned, &t.RentalRevenue, &t.LateFeeRevenue)
	if err != nil {
		return repository.RentalTotals{}, fmt.Errorf("analytics.Totals: %w", err)
	}
	return t, nil
}
