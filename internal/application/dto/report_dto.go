package dto

import "github.com/shopspring/decimal"

// ReportPeriodRequest query params de los reportes. Fechas YYYY-MM-DD, ambas inclusivas.
type ReportPeriodRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// GenreStatsDTO fila del reporte por género.
type GenreStatsDTO struct {
	Genre          string          `json:"genre"`
	TotalRentals   int             `json:"total_rentals"`
	ActiveRentals  int             `json:"active_rentals"`
	OverdueRentals int             `json:"overdue_rentals"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	AvgRevenue     decimal.Decimal `json:"avg_revenue_per_rental"`
}

// GenreReportDTO respuesta de GET /api/reports/genres.
type GenreReportDTO struct {
	StartDate string          `json:"start_date,omitempty"`
	EndDate   string          `json:"end_date,omitempty"`
	Genres    []GenreStatsDTO `json:"genres"`
}

// MonthlyTrendDTO fila del reporte mensual.
type MonthlyTrendDTO struct {
	Month           string          `json:"month"` // YYYY-MM
	Label           string          `json:"label"` // ej. "Octubre 2026"
	RentalCount     int             `json:"rental_count"`
	UniqueCustomers int             `json:"unique_customers"`
	UniqueMovies    int             `json:"unique_movies"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AvgRevenue      decimal.Decimal `json:"avg_revenue_per_rental"`
}

// MonthlyReportDTO respuesta de GET /api/reports/monthly.
type MonthlyReportDTO struct {
	StartDate string            `json:"start_date,omitempty"`
	EndDate   string            `json:"end_date,omitempty"`
	Months    []MonthlyTrendDTO `json:"months"`
}

// StatusCountsDTO alquileres por estado.
type StatusCountsDTO struct {
	Active   int `json:"active"`
	Overdue  int `json:"overdue"`
	Returned int `json:"returned"`
	Total    int `json:"total"`
}

// RevenueDTO recaudación acumulada.
type RevenueDTO struct {
	Rentals  decimal.Decimal `json:"rentals"`
	LateFees decimal.Decimal `json:"late_fees"`
	Total    decimal.Decimal `json:"total"`
}

// RentalDashboardDTO respuesta de GET /api/reports/summary.
type RentalDashboardDTO struct {
	Status     StatusCountsDTO   `json:"status"`
	Revenue    RevenueDTO        `json:"revenue"`
	LastMonths []MonthlyTrendDTO `json:"last_months"` // los últimos 6, incluido el actual, sin huecos
	TopGenres  []GenreStatsDTO   `json:"top_genres"`
	DateLabel  string            `json:"date_label"`
}
