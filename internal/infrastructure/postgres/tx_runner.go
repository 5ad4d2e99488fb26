package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/videoclub-api/internal/application/rental"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
)

var _ rental.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRental inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La serialización sobre una misma película la dan los SELECT ... FOR UPDATE de los repos.
func (r *TxRunner) RunRental(ctx context.Context, fn func(
	movieRepo repository.MovieRepository,
	customerRepo repository.CustomerRepository,
	rentalRepo repository.RentalRepository,
	returnRepo repository.RentalReturnRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewMovieRepository(tx),
		NewCustomerRepository(tx),
		NewRentalRepository(tx),
		NewRentalReturnRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
