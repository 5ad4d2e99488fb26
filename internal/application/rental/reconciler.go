package rental

import (
	"context"

	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/rental"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
	"github.com/jhoicas/videoclub-api/pkg/logger"
)

// Reconciler promueve a overdue los alquileres activos con due_date < hoy.
// No corre en segundo plano: lo invocan las consultas que dependen del estado,
// cmd/reconcile y el endpoint de mantenimiento.
type Reconciler struct {
	rentalRepo repository.RentalRepository
	clock      Clock
	log        *logger.Logger
}

// NewReconciler construye el reconciliador.
func NewReconciler(rentalRepo repository.RentalRepository, clock Clock, log *logger.Logger) *Reconciler {
	if log == nil {
		log = logger.Nop()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Reconciler{rentalRepo: rentalRepo, clock: clock, log: log}
}

// PromoteOverdue ejecuta el barrido y devuelve cuántos alquileres cambiaron. Idempotente.
func (r *Reconciler) PromoteOverdue(ctx context.Context) (int64, error) {
	today := rental.DateOf(r.clock.Now())
	n, err := r.rentalRepo.PromoteOverdue(ctx, today)
	if err != nil {
		r.log.Error().Err(err).Msg("actualizar alquileres vencidos")
		return 0, domain.Persistence(err)
	}
	if n > 0 {
		r.log.Info().Int64("updated", n).Str("today", today.Format("2006-01-02")).Msg("alquileres marcados como overdue")
	}
	return n, nil
}
