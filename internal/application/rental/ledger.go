package rental

import (
	"context"

	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
	"github.com/jhoicas/videoclub-api/pkg/logger"
)

// Ledger es el libro de inventario: único punto que modifica stock_quantity e is_available.
// Siempre opera con el MovieRepository de la transacción en curso y sobre una película
// leída con GetForUpdate en esa misma transacción.
type Ledger struct {
	log *logger.Logger
}

// NewLedger construye el libro de inventario.
func NewLedger(log *logger.Logger) *Ledger {
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{log: log}
}

// Decrement saca una copia. Requiere stock > 0; el UPDATE va protegido con stock_quantity > 0
// y si no afecta filas se devuelve ErrStockConflict.
func (l *Ledger) Decrement(ctx context.Context, movies repository.MovieRepository, movie *entity.Movie) error {
	if movie.StockQuantity <= 0 {
		return domain.ErrMovieUnavailable
	}
	ok, err := movies.DecrementStock(ctx, movie.ID)
	if err != nil {
		return domain.Persistence(err)
	}
	if !ok {
		return domain.ErrStockConflict
	}
	movie.StockQuantity--
	movie.IsAvailable = movie.StockQuantity > 0
	return nil
}

// Increment devuelve una copia: stock + 1 e is_available = true. No se limita a total_copies.
func (l *Ledger) Increment(ctx context.Context, movies repository.MovieRepository, movie *entity.Movie) error {
	if err := movies.IncrementStock(ctx, movie.ID); err != nil {
		return domain.Persistence(err)
	}
	movie.StockQuantity++
	movie.IsAvailable = true
	if movie.StockQuantity > movie.TotalCopies {
		l.log.Warn().
			Str("movie_id", movie.ID).
			Int("stock_quantity", movie.StockQuantity).
			Int("total_copies", movie.TotalCopies).
			Msg("stock supera el total de copias")
	}
	return nil
}

// AddCopies incorpora n copias nuevas al catálogo (total y stock).
func (l *Ledger) AddCopies(ctx context.Context, movies repository.MovieRepository, movie *entity.Movie, n int) error {
	if n <= 0 {
		return domain.ErrInvalidInput
	}
	if err := movies.AddCopies(ctx, movie.ID, n); err != nil {
		return domain.Persistence(err)
	}
	movie.TotalCopies += n
	movie.StockQuantity += n
	movie.IsAvailable = true
	return nil
}
