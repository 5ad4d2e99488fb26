package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// GenreRentalStats alquileres e ingresos agrupados por género de la película.
type GenreRentalStats struct {
	Genre          string // "Unknown" si la película no tiene género
	TotalRentals   int
	ActiveRentals  int
	OverdueRentals int
	TotalRevenue   decimal.Decimal // suma de total_charge
}

// MonthlyRentalTrend actividad de alquiler de un mes calendario.
type MonthlyRentalTrend struct {
	Month           string // YYYY-MM en la zona de la sesión
	RentalCount     int
	UniqueCustomers int
	UniqueMovies    int
	TotalRevenue    decimal.Decimal
}

// RentalTotals conteo por estado y recaudación acumulada.
type RentalTotals struct {
	Active         int
	Overdue        int
	Returned       int
	RentalRevenue  decimal.Decimal // suma de total_charge
	LateFeeRevenue decimal.Decimal // suma de late_fee cobrado en devoluciones
}

// AnalyticsRepository consultas de solo lectura para reportes de alquiler.
// from y to acotan rental_date: from inclusivo, to exclusivo; nil deja el extremo abierto.
type AnalyticsRepository interface {
	GenreStats(ctx context.Context, from, to *time.Time) ([]GenreRentalStats, error)
	MonthlyTrends(ctx context.Context, from, to *time.Time) ([]MonthlyRentalTrend, error)
	Totals(ctx context.Context, from, to *time.Time) (RentalTotals, error)
}
