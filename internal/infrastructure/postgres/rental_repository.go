package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.RentalRepository       = (*RentalRepo)(nil)
	_ repository.RentalReturnRepository = (*RentalReturnRepo)(nil)
)

const rentalColumns = `id, customer_id, movie_id, employee_id, rental_date, due_date, actual_return_date,
		total_charge, late_fee, status, created_at`

// rentalViewSelect une nombres de cliente, película y empleado para listados.
const rentalViewSelect = `
	SELECT r.id, r.customer_id, r.movie_id, r.employee_id, r.rental_date, r.due_date, r.actual_return_date,
	       r.total_charge, r.late_fee, r.status, r.created_at,
	       c.first_name || ' ' || c.last_name, m.title, e.first_name || ' ' || e.last_name
	FROM rentals r
	JOIN customers c ON c.id = r.customer_id
	JOIN movies m ON m.id = r.movie_id
	JOIN employees e ON e.id = r.employee_id`

// RentalRepo implementación de RentalRepository (usable con pool o tx).
type RentalRepo struct {
	q Querier
}

// NewRentalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRentalRepository(q Querier) *RentalRepo {
	return &RentalRepo{q: q}
}

func scanRental(row pgx.Row) (*entity.Rental, error) {
	var r entity.Rental
	if err := row.Scan(&r.ID, &r.CustomerID, &r.MovieID, &r.EmployeeID, &r.RentalDate, &r.DueDate,
		&r.ActualReturnDate, &r.TotalCharge, &r.LateFee, &r.Status, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create persiste un alquiler.
func (r *RentalRepo) Create(ctx context.Context, rt *entity.Rental) error {
	query := `
		INSERT INTO rentals (` + rentalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		rt.ID, rt.CustomerID, rt.MovieID, rt.EmployeeID, rt.RentalDate, rt.DueDate, rt.ActualReturnDate,
		rt.TotalCharge, rt.LateFee, rt.Status, rt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

// GetByID obtiene un alquiler por ID.
func (r *RentalRepo) GetByID(ctx context.Context, id string) (*entity.Rental, error) {
	rt, err := scanRental(r.q.QueryRow(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental: %w", err)
	}
	return rt, nil
}

// GetForUpdate obtiene el alquiler y bloquea la fila (SELECT FOR UPDATE).
func (r *RentalRepo) GetForUpdate(ctx context.Context, id string) (*entity.Rental, error) {
	rt, err := scanRental(r.q.QueryRow(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental for update: %w", err)
	}
	return rt, nil
}

// MarkReturned cierra el alquiler. Solo afecta alquileres abiertos.
func (r *RentalRepo) MarkReturned(ctx context.Context, id string, returnDate time.Time, lateFee decimal.Decimal) error {
	query := `
		UPDATE rentals
		SET status = 'returned', actual_return_date = $2, late_fee = $3
		WHERE id = $1 AND status IN ('active', 'overdue')`
	tag, err := r.q.Exec(ctx, query, id, returnDate, lateFee)
	if err != nil {
		return fmt.Errorf("mark returned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRentalAlreadyReturned
	}
	return nil
}

// PromoteOverdue pasa a overdue los activos vencidos. Idempotente.
func (r *RentalRepo) PromoteOverdue(ctx context.Context, today time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE rentals SET status = 'overdue' WHERE status = 'active' AND due_date < $1`, today)
	if err != nil {
		return 0, fmt.Errorf("promote overdue: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Search filtra alquileres; los parámetros van siempre como placeholders.
func (r *RentalRepo) Search(ctx context.Context, f repository.RentalFilter) ([]*entity.RentalView, error) {
	where, args := rentalWhere(f)
	pos := len(args) + 1
	query := rentalViewSelect + where +
		fmt.Sprintf(" ORDER BY r.rental_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	return r.queryViews(ctx, query, false, args...)
}

// Count total de alquileres que cumplen el filtro (sin paginar).
func (r *RentalRepo) Count(ctx context.Context, f repository.RentalFilter) (int, error) {
	where, args := rentalWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM rentals r`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rentals: %w", err)
	}
	return n, nil
}

func rentalWhere(f repository.RentalFilter) (string, []any) {
	where := " WHERE 1 = 1"
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(cond, len(args))
	}
	if f.CustomerID != "" {
		add(" AND r.customer_id = $%d", f.CustomerID)
	}
	if f.MovieID != "" {
		add(" AND r.movie_id = $%d", f.MovieID)
	}
	if f.Status != "" {
		add(" AND r.status = $%d", f.Status)
	}
	if f.From != nil {
		add(" AND r.rental_date >= $%d", *f.From)
	}
	if f.To != nil {
		add(" AND r.rental_date <= $%d", *f.To)
	}
	return where, args
}

// ListOverdue alquileres abiertos con due_date < today, los más atrasados primero.
func (r *RentalRepo) ListOverdue(ctx context.Context, today time.Time) ([]*entity.RentalView, error) {
	query := `
	SELECT r.id, r.customer_id, r.movie_id, r.employee_id, r.rental_date, r.due_date, r.actual_return_date,
	       r.total_charge, r.late_fee, r.status, r.created_at,
	       c.first_name || ' ' || c.last_name, m.title, e.first_name || ' ' || e.last_name,
	       ($1::date - r.due_date) AS days_overdue
	FROM rentals r
	JOIN customers c ON c.id = r.customer_id
	JOIN movies m ON m.id = r.movie_id
	JOIN employees e ON e.id = r.employee_id
	WHERE r.status IN ('active', 'overdue') AND r.due_date < $1
	ORDER BY r.due_date ASC`
	return r.queryViews(ctx, query, true, today)
}

func (r *RentalRepo) queryViews(ctx context.Context, query string, withDays bool, args ...any) ([]*entity.RentalView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rentals: %w", err)
	}
	defer rows.Close()
	var list []*entity.RentalView
	for rows.Next() {
		var v entity.RentalView
		dest := []any{&v.ID, &v.CustomerID, &v.MovieID, &v.EmployeeID, &v.RentalDate, &v.DueDate,
			&v.ActualReturnDate, &v.TotalCharge, &v.LateFee, &v.Status, &v.CreatedAt,
			&v.CustomerName, &v.MovieTitle, &v.EmployeeName}
		if withDays {
			dest = append(dest, &v.DaysOverdue)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// CountOpenByMovie cuántos alquileres abiertos tiene una película.
func (r *RentalRepo) CountOpenByMovie(ctx context.Context, movieID string) (int, error) {
	return r.countOpen(ctx, "movie_id", movieID)
}

// CountOpenByCustomer cuántos alquileres abiertos tiene un cliente.
func (r *RentalRepo) CountOpenByCustomer(ctx context.Context, customerID string) (int, error) {
	return r.countOpen(ctx, "customer_id", customerID)
}

func (r *RentalRepo) countOpen(ctx context.Context, column, id string) (int, error) {
	var n int
	query := `SELECT count(*) FROM rentals WHERE ` + column + ` = $1 AND status IN ('active', 'overdue')`
	if err := r.q.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count open rentals: %w", err)
	}
	return n, nil
}

// RentalReturnRepo implementación de RentalReturnRepository.
type RentalReturnRepo struct {
	q Querier
}

// NewRentalReturnRepository construye el adaptador.
func NewRentalReturnRepository(q Querier) *RentalReturnRepo {
	return &RentalReturnRepo{q: q}
}

// Create inserta el registro de devolución. rental_id es UNIQUE: un segundo intento devuelve ErrDuplicate.
func (r *RentalReturnRepo) Create(ctx context.Context, ret *entity.RentalReturn) error {
	query := `
		INSERT INTO rental_returns (id, rental_id, return_date, late_days, late_fee, total_paid, processed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		ret.ID, ret.RentalID, ret.ReturnDate, ret.LateDays, ret.LateFee, ret.TotalPaid, ret.ProcessedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rental return: %w", err)
	}
	return nil
}

// GetByRentalID obtiene la devolución de un alquiler; (nil, nil) si aún no se devolvió.
func (r *RentalReturnRepo) GetByRentalID(ctx context.Context, rentalID string) (*entity.RentalReturn, error) {
	query := `
		SELECT id, rental_id, return_date, late_days, late_fee, total_paid, processed_by
		FROM rental_returns WHERE rental_id = $1`
	var ret entity.RentalReturn
	err := r.q.QueryRow(ctx, query, rentalID).Scan(
		&ret.ID, &ret.RentalID, &ret.ReturnDate, &ret.LateDays, &ret.LateFee, &ret.TotalPaid, &ret.ProcessedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental return: %w", err)
	}
	return &ret, nil
}
