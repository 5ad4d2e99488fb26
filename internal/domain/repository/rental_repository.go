package repository

import (
	"context"
	"time"

	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RentalFilter filtros de búsqueda de alquileres. Campos vacíos no filtran.
type RentalFilter struct {
	CustomerID string
	MovieID    string
	Status     string
	From       *time.Time // rental_date >= From
	To         *time.Time // rental_date <= To
	Limit      int
	Offset     int
}

// RentalRepository define el puerto de persistencia para Rental.
type RentalRepository interface {
	Create(ctx context.Context, rental *entity.Rental) error
	GetByID(ctx context.Context, id string) (*entity.Rental, error)
	// GetForUpdate bloquea la fila del alquiler (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Rental, error)
	MarkReturned(ctx context.Context, id string, returnDate time.Time, lateFee decimal.Decimal) error
	// PromoteOverdue pasa a overdue los activos con due_date < today; devuelve filas afectadas.
	PromoteOverdue(ctx context.Context, today time.Time) (int64, error)
	Search(ctx context.Context, filter RentalFilter) ([]*entity.RentalView, error)
	// Count total de Search sin paginar.
	Count(ctx context.Context, filter RentalFilter) (int, error)
	ListOverdue(ctx context.Context, today time.Time) ([]*entity.RentalView, error)
	CountOpenByMovie(ctx context.Context, movieID string) (int, error)
	CountOpenByCustomer(ctx context.Context, customerID string) (int, error)
}

// RentalReturnRepository define el puerto para los registros de devolución (inmutables).
type RentalReturnRepository interface {
	Create(ctx context.Context, ret *entity.RentalReturn) error
	GetByRentalID(ctx context.Context, rentalID string) (*entity.RentalReturn, error)
}
