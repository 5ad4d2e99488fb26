// reconcile promueve a overdue los alquileres activos vencidos y termina.
// Pensado para cron: go run ./cmd/reconcile
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/videoclub-api/internal/application/rental"
	"github.com/jhoicas/videoclub-api/internal/infrastructure/postgres"
	"github.com/jhoicas/videoclub-api/pkg/config"
	"github.com/jhoicas/videoclub-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "reconcile"})

	n, err := run(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("promover vencidos")
		os.Exit(1)
	}
	log.Info().Int64("updated", n).Msg("alquileres vencidos actualizados")
}

// run abre el pool, promueve vencidos y cierra el pool.
func run(cfg *config.Config, log *logger.Logger) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Rental.Location)
	if err != nil {
		return 0, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	reconciler := rental.NewReconciler(
		postgres.NewRentalRepository(pool),
		rental.SystemClock{Location: cfg.Rental.Location},
		log,
	)
	return reconciler.PromoteOverdue(ctx)
}
