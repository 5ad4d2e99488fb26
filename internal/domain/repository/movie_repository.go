package repository

import (
	"context"

	"github.com/jhoicas/videoclub-api/internal/domain/entity"
)

// MovieFilter filtros de listado del catálogo.
type MovieFilter struct {
	Search        string // título, director o género (ILIKE)
	Genre         string
	AvailableOnly bool
	Limit         int
	Offset        int
}

// MovieRepository define el puerto de persistencia para Movie (DIP).
// Los métodos de stock solo los usa el libro de inventario dentro de una transacción.
type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	GetByID(ctx context.Context, id string) (*entity.Movie, error)
	GetByTitleAndDirector(ctx context.Context, title, director string) (*entity.Movie, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Movie, error)
	List(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error)
	// Count total sin paginar (ignora Limit/Offset).
	Count(ctx context.Context, filter MovieFilter) (int, error)
	// Update aplica el patch; devuelve false si la película no existe.
	Update(ctx context.Context, id string, patch entity.MoviePatch) (bool, error)
	// DecrementStock resta una copia solo si stock > 0; false si no afectó filas.
	DecrementStock(ctx context.Context, id string) (bool, error)
	IncrementStock(ctx context.Context, id string) error
	AddCopies(ctx context.Context, id string, n int) error
	Delete(ctx context.Context, id string) error
}
