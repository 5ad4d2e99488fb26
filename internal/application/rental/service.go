package rental

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/rental"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
	"github.com/jhoicas/videoclub-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service orquesta alquileres y devoluciones. Es el dueño de las transiciones
// entre Rental y el stock de Movie: nadie más cambia rental_status ni stock_quantity.
type Service struct {
	txRunner     TxRunner
	rentalRepo   repository.RentalRepository
	returnRepo   repository.RentalReturnRepository
	movieRepo    repository.MovieRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	ledger       *Ledger
	reconciler   *Reconciler
	receipts     ReceiptGenerator
	clock        Clock
	cfg          Config
	storeName    string
	log          *logger.Logger
}

// NewService construye el servicio. receipts puede ser nil (sin comprobantes PDF).
func NewService(
	txRunner TxRunner,
	rentalRepo repository.RentalRepository,
	returnRepo repository.RentalReturnRepository,
	movieRepo repository.MovieRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	receipts ReceiptGenerator,
	clock Clock,
	cfg Config,
	storeName string,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.LateFeePerDay.IsNegative() {
		cfg.LateFeePerDay = rental.DefaultLateFeePerDay
	}
	log = log.Named("rental")
	return &Service{
		txRunner:     txRunner,
		rentalRepo:   rentalRepo,
		returnRepo:   returnRepo,
		movieRepo:    movieRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		ledger:       NewLedger(log),
		reconciler:   NewReconciler(rentalRepo, clock, log),
		receipts:     receipts,
		clock:        clock,
		cfg:          cfg,
		storeName:    storeName,
		log:          log,
	}
}

// Reconciler expone el barrido de vencidos para cmd/reconcile y el endpoint de mantenimiento.
func (s *Service) Reconciler() *Reconciler { return s.reconciler }

// LateFeePerDay recargo diario vigente.
func (s *Service) LateFeePerDay() decimal.Decimal { return s.cfg.LateFeePerDay }

// RentInput entrada para registrar un alquiler.
type RentInput struct {
	CustomerID string
	MovieID    string
	EmployeeID string
	DueDate    time.Time
}

// Rent registra un alquiler. Valida en orden (cliente, película, disponibilidad, fecha) antes
// de escribir nada; luego inserta el Rental y descuenta la copia en la misma transacción.
// La fila de la película queda bloqueada (SELECT FOR UPDATE) hasta el Commit, de modo que dos
// alquileres simultáneos de la última copia no pueden ver ambos stock > 0.
func (s *Service) Rent(ctx context.Context, in RentInput) (*dto.RentalSummary, error) {
	if in.CustomerID == "" || in.MovieID == "" || in.EmployeeID == "" || in.DueDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := s.clock.Now()
	today := rental.DateOf(now)
	due := rental.DateOf(in.DueDate)

	var out *dto.RentalSummary
	err := s.txRunner.RunRental(ctx, func(
		movieRepo repository.MovieRepository,
		customerRepo repository.CustomerRepository,
		rentalRepo repository.RentalRepository,
		_ repository.RentalReturnRepository,
	) error {
		customer, err := customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return domain.Persistence(err)
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}
		if !customer.IsActive {
			return domain.ErrCustomerInactive
		}

		movie, err := movieRepo.GetForUpdate(ctx, in.MovieID)
		if err != nil {
			return domain.Persistence(err)
		}
		if movie == nil {
			return domain.ErrMovieNotFound
		}
		if !movie.IsAvailable || movie.StockQuantity <= 0 {
			return domain.ErrMovieUnavailable
		}

		days := rental.RentalDays(today, due)
		if days <= 0 {
			return domain.ErrInvalidDueDate
		}
		if s.cfg.MaxRentalDays > 0 && days > s.cfg.MaxRentalDays {
			return domain.ErrInvalidDueDate
		}

		r := &entity.Rental{
			ID:          uuid.New().String(),
			CustomerID:  in.CustomerID,
			MovieID:     in.MovieID,
			EmployeeID:  in.EmployeeID,
			RentalDate:  now,
			DueDate:     due,
			TotalCharge: rental.TotalCharge(movie.RentalRate, days),
			LateFee:     decimal.Zero,
			Status:      entity.RentalStatusActive,
			CreatedAt:   now,
		}
		if err := rentalRepo.Create(ctx, r); err != nil {
			return domain.Persistence(err)
		}
		if err := s.ledger.Decrement(ctx, movieRepo, movie); err != nil {
			return err
		}

		out = &dto.RentalSummary{
			RentalID:    r.ID,
			CustomerID:  r.CustomerID,
			MovieID:     r.MovieID,
			MovieTitle:  movie.Title,
			EmployeeID:  r.EmployeeID,
			RentalDate:  r.RentalDate,
			DueDate:     r.DueDate.Format(dto.DateLayout),
			RentalDays:  days,
			TotalCharge: r.TotalCharge,
			Status:      r.Status,
			Message:     fmt.Sprintf("Película '%s' alquilada con éxito. Cargo: $%s", movie.Title, r.TotalCharge.StringFixed(2)),
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("alquiler", err, in.MovieID)
	}

	s.log.Info().
		Str("rental_id", out.RentalID).
		Str("movie_id", out.MovieID).
		Str("customer_id", out.CustomerID).
		Str("employee_id", out.EmployeeID).
		Str("total_charge", out.TotalCharge.StringFixed(2)).
		Msg("alquiler registrado")
	return out, nil
}

// Return procesa la devolución: calcula mora, cierra el Rental, inserta el RentalReturn
// y repone la copia, todo en una transacción.
func (s *Service) Return(ctx context.Context, rentalID, employeeID string) (*dto.ReturnSummary, error) {
	if rentalID == "" || employeeID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := s.clock.Now()
	today := rental.DateOf(now)

	var out *dto.ReturnSummary
	err := s.txRunner.RunRental(ctx, func(
		movieRepo repository.MovieRepository,
		_ repository.CustomerRepository,
		rentalRepo repository.RentalRepository,
		returnRepo repository.RentalReturnRepository,
	) error {
		r, err := rentalRepo.GetForUpdate(ctx, rentalID)
		if err != nil {
			return domain.Persistence(err)
		}
		if r == nil {
			return domain.ErrRentalNotFound
		}
		if !r.IsOpen() {
			return domain.ErrRentalAlreadyReturned
		}

		movie, err := movieRepo.GetForUpdate(ctx, r.MovieID)
		if err != nil {
			return domain.Persistence(err)
		}
		if movie == nil {
			return domain.ErrMovieNotFound
		}

		lateDays, lateFee := rental.LateFee(r.DueDate, today, s.cfg.LateFeePerDay)
		totalPaid := rental.TotalPaid(r.TotalCharge, lateFee)

		if err := rentalRepo.MarkReturned(ctx, r.ID, today, lateFee); err != nil {
			if errors.Is(err, domain.ErrRentalAlreadyReturned) {
				return err
			}
			return domain.Persistence(err)
		}
		ret := &entity.RentalReturn{
			ID:          uuid.New().String(),
			RentalID:    r.ID,
			ReturnDate:  now,
			LateDays:    lateDays,
			LateFee:     lateFee,
			TotalPaid:   totalPaid,
			ProcessedBy: employeeID,
		}
		if err := returnRepo.Create(ctx, ret); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrRentalAlreadyReturned
			}
			return domain.Persistence(err)
		}
		if err := s.ledger.Increment(ctx, movieRepo, movie); err != nil {
			return err
		}

		out = &dto.ReturnSummary{
			ReturnID:       ret.ID,
			RentalID:       r.ID,
			MovieTitle:     movie.Title,
			RentalDate:     r.RentalDate,
			DueDate:        r.DueDate.Format(dto.DateLayout),
			ReturnDate:     ret.ReturnDate,
			LateDays:       lateDays,
			LateFee:        lateFee,
			OriginalCharge: r.TotalCharge,
			TotalPaid:      totalPaid,
			OnTime:         lateDays == 0,
			Message:        returnMessage(movie.Title, lateDays, lateFee, totalPaid),
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("devolución", err, rentalID)
	}

	s.log.Info().
		Str("rental_id", out.RentalID).
		Str("return_id", out.ReturnID).
		Int("late_days", out.LateDays).
		Str("total_paid", out.TotalPaid.StringFixed(2)).
		Msg("devolución registrada")
	return out, nil
}

func returnMessage(title string, lateDays int, lateFee, totalPaid decimal.Decimal) string {
	if lateDays > 0 {
		return fmt.Sprintf("Película '%s' devuelta con %d día(s) de retraso. Recargo: $%s. Total: $%s",
			title, lateDays, lateFee.StringFixed(2), totalPaid.StringFixed(2))
	}
	return fmt.Sprintf("Película '%s' devuelta a tiempo. Total: $%s", title, totalPaid.StringFixed(2))
}

// CalculateLateFee vista previa del recargo, sin efectos. returnDate nil = hoy.
func (s *Service) CalculateLateFee(dueDate time.Time, returnDate *time.Time) dto.LateFeePreview {
	ret := s.clock.Now()
	if returnDate != nil {
		ret = *returnDate
	}
	days, fee := rental.LateFee(dueDate, ret, s.cfg.LateFeePerDay)
	return dto.LateFeePreview{
		DueDate:       rental.DateOf(dueDate).Format(dto.DateLayout),
		ReturnDate:    rental.DateOf(ret).Format(dto.DateLayout),
		LateDays:      days,
		LateFee:       fee,
		LateFeePerDay: s.cfg.LateFeePerDay,
	}
}

// PreviewReturn proyecta el recargo de un alquiler abierto si se devolviera hoy.
func (s *Service) PreviewReturn(ctx context.Context, rentalID string) (*dto.LateFeePreview, error) {
	r, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, s.fail("vista previa", domain.Persistence(err), rentalID)
	}
	if r == nil {
		return nil, domain.ErrRentalNotFound
	}
	if !r.IsOpen() {
		return nil, domain.ErrRentalAlreadyReturned
	}
	p := s.CalculateLateFee(r.DueDate, nil)
	p.RentalID = r.ID
	p.TotalCharge = r.TotalCharge
	p.TotalDue = rental.TotalPaid(r.TotalCharge, p.LateFee)
	return &p, nil
}

// Restock incorpora n copias nuevas de una película.
func (s *Service) Restock(ctx context.Context, movieID string, n int) (*entity.Movie, error) {
	if movieID == "" || n <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Movie
	err := s.txRunner.RunRental(ctx, func(
		movieRepo repository.MovieRepository,
		_ repository.CustomerRepository,
		_ repository.RentalRepository,
		_ repository.RentalReturnRepository,
	) error {
		movie, err := movieRepo.GetForUpdate(ctx, movieID)
		if err != nil {
			return domain.Persistence(err)
		}
		if movie == nil {
			return domain.ErrMovieNotFound
		}
		if err := s.ledger.AddCopies(ctx, movieRepo, movie, n); err != nil {
			return err
		}
		out = movie
		return nil
	})
	if err != nil {
		return nil, s.fail("reposición", err, movieID)
	}
	s.log.Info().Str("movie_id", movieID).Int("copies", n).Msg("copias agregadas")
	return out, nil
}

// fail clasifica el error: los errores de dominio pasan tal cual; cualquier otro
// (begin/commit de la tx) se marca como persistencia. Estos últimos se registran.
func (s *Service) fail(op string, err error, ref string) error {
	kind := domain.KindOf(err)
	if kind == domain.KindNone {
		err = domain.Persistence(err)
		kind = domain.KindPersistenceFailure
	}
	if kind == domain.KindPersistenceFailure {
		s.log.Error().Err(err).Str("op", op).Str("ref", ref).Msg("operación revertida")
	} else {
		s.log.Debug().Err(err).Str("op", op).Str("ref", ref).Msg("operación rechazada")
	}
	return err
}
