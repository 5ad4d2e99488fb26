package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/videoclub-api/internal/application/analytics"
	"github.com/jhoicas/videoclub-api/internal/application/auth"
	"github.com/jhoicas/videoclub-api/internal/application/rental"
	"github.com/jhoicas/videoclub-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/videoclub-api/internal/infrastructure/pdf"
	"github.com/jhoicas/videoclub-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/videoclub-api/internal/interfaces/http"
	"github.com/jhoicas/videoclub-api/pkg/config"
	"github.com/jhoicas/videoclub-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("late_fee_per_day", cfg.Rental.LateFeePerDay.StringFixed(2)).
		Str("timezone", cfg.Rental.Location.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Rental.Location)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	movieRepo := postgres.NewMovieRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	rentalRepo := postgres.NewRentalRepository(pool)
	returnRepo := postgres.NewRentalReturnRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rentalSvc := rental.NewService(
		txRunner, rentalRepo, returnRepo, movieRepo, customerRepo, employeeRepo,
		infrapdf.NewMarotoReceiptGenerator(),
		rental.SystemClock{Location: cfg.Rental.Location},
		rental.Config{LateFeePerDay: cfg.Rental.LateFeePerDay, MaxRentalDays: cfg.Rental.MaxDays},
		cfg.App.StoreName,
		log,
	)
	movieUC := usecase.NewMovieUseCase(movieRepo, rentalRepo, rentalSvc)
	customerUC := usecase.NewCustomerUseCase(customerRepo, rentalRepo)
	reportsUC := analytics.NewReportsUseCase(analyticsRepo, rentalSvc.Reconciler(),
		rental.SystemClock{Location: cfg.Rental.Location}, log)
	authUC := auth.NewAuthUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Barrido inicial: el estado overdue queda al día desde el arranque.
	if n, err := rentalSvc.Reconciler().PromoteOverdue(ctx); err != nil {
		log.Warn().Err(err).Msg("barrido inicial de vencidos")
	} else {
		log.Info().Int64("updated", n).Msg("barrido inicial de vencidos")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Videoclub API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		MovieUC:    movieUC,
		CustomerUC: customerUC,
		Rentals:    rentalSvc,
		Reconciler: rentalSvc.Reconciler(),
		Reports:    reportsUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
