package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/videoclub-api/internal/application/auth"
	"github.com/jhoicas/videoclub-api/internal/application/usecase"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	MovieUC    *usecase.MovieUseCase
	CustomerUC *usecase.CustomerUseCase
	Rentals    rentalService
	Reconciler overduePromoter
	Reports    reportsService
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)
	protected.Post("/auth/employees", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Catálogo: lectura para todos, escritura para admin/manager
	movies := protected.Group("/movies")
	movieHandler := NewMovieHandler(deps.MovieUC)
	movies.Get("/", movieHandler.List)
	movies.Get("/:id", movieHandler.GetByID)
	movies.Post("/", managers, movieHandler.Create)
	movies.Put("/:id", managers, movieHandler.Update)
	movies.Post("/:id/copies", managers, movieHandler.AddCopies)
	movies.Delete("/:id", managers, movieHandler.Delete)

	rentalHandler := NewRentalHandler(deps.Rentals, deps.Reconciler)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", managers, customerHandler.Deactivate)
	customers.Post("/:id/activate", managers, customerHandler.Reactivate)
	customers.Get("/:id/rentals", rentalHandler.CustomerHistory)

	// Alquileres: las rutas fijas van antes de /:id
	rentals := protected.Group("/rentals")
	rentals.Post("/", rentalHandler.Rent)
	rentals.Get("/", rentalHandler.Search)
	rentals.Get("/overdue", rentalHandler.Overdue)
	rentals.Post("/reconcile", managers, rentalHandler.Reconcile)
	rentals.Get("/:id", rentalHandler.GetByID)
	rentals.Post("/:id/return", rentalHandler.Return)
	rentals.Get("/:id/late-fee", rentalHandler.PreviewLateFee)
	rentals.Get("/:id/receipt", rentalHandler.Receipt)

	protected.Get("/late-fee", rentalHandler.CalculateLateFee)

	reports := protected.Group("/reports", managers)
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/genres", reportHandler.Genres)
	reports.Get("/monthly", reportHandler.Monthly)
	reports.Get("/summary", reportHandler.Summary)
}
