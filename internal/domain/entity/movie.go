package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movie representa un título del catálogo con su control de copias.
// StockQuantity son las copias en tienda; IsAvailable siempre equivale a StockQuantity > 0
// y solo lo modifica el libro de inventario de alquileres.
type Movie struct {
	ID            string
	Title         string
	Director      string
	Genre         string
	ReleaseYear   int
	Duration      int // minutos
	Description   string
	RentalRate    decimal.Decimal // tarifa por día
	StockQuantity int
	TotalCopies   int
	IsAvailable   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CopiesOut devuelve cuántas copias están fuera (alquiladas).
func (m *Movie) CopiesOut() int {
	out := m.TotalCopies - m.StockQuantity
	if out < 0 {
		return 0
	}
	return out
}
