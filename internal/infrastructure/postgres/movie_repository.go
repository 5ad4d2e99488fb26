package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
)

var _ repository.MovieRepository = (*MovieRepo)(nil)

const movieColumns = `id, title, director, genre, release_year, duration, description, rental_rate,
		stock_quantity, total_copies, is_available, created_at, updated_at`

// MovieRepo implementación de MovieRepository sobre PostgreSQL (usable con pool o tx).
type MovieRepo struct {
	q Querier
}

// NewMovieRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovieRepository(q Querier) *MovieRepo {
	return &MovieRepo{q: q}
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var m entity.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Director, &m.Genre, &m.ReleaseYear, &m.Duration, &m.Description,
		&m.RentalRate, &m.StockQuantity, &m.TotalCopies, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste una película nueva.
func (r *MovieRepo) Create(ctx context.Context, m *entity.Movie) error {
	query := `
		INSERT INTO movies (` + movieColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Title, m.Director, m.Genre, m.ReleaseYear, m.Duration, m.Description, m.RentalRate,
		m.StockQuantity, m.TotalCopies, m.IsAvailable, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movie: %w", err)
	}
	return nil
}

// GetByID obtiene una película por ID. (nil, nil) si no existe.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*entity.Movie, error) {
	m, err := scanMovie(r.q.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return m, nil
}

// GetByTitleAndDirector busca un título exacto (sin distinguir mayúsculas).
func (r *MovieRepo) GetByTitleAndDirector(ctx context.Context, title, director string) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies
		WHERE lower(title) = lower($1) AND lower(director) = lower($2) LIMIT 1`
	m, err := scanMovie(r.q.QueryRow(ctx, query, title, director))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movie by title: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene la película y bloquea la fila (SELECT FOR UPDATE).
func (r *MovieRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movie, error) {
	m, err := scanMovie(r.q.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movie for update: %w", err)
	}
	return m, nil
}

// List lista el catálogo con filtros opcionales, ordenado por título.
func (r *MovieRepo) List(ctx context.Context, f repository.MovieFilter) ([]*entity.Movie, error) {
	where, args := movieWhere(f)
	pos := len(args) + 1
	query := `SELECT ` + movieColumns + ` FROM movies` + where +
		fmt.Sprintf(" ORDER BY title LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Count total de películas que cumplen el filtro (sin paginar).
func (r *MovieRepo) Count(ctx context.Context, f repository.MovieFilter) (int, error) {
	where, args := movieWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM movies`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

func movieWhere(f repository.MovieFilter) (string, []any) {
	where := " WHERE 1 = 1"
	var args []any
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		n := len(args)
		where += fmt.Sprintf(" AND (title ILIKE $%d OR director ILIKE $%d OR genre ILIKE $%d)", n, n, n)
	}
	if f.Genre != "" {
		args = append(args, f.Genre)
		where += fmt.Sprintf(" AND lower(genre) = lower($%d)", len(args))
	}
	if f.AvailableOnly {
		where += " AND stock_quantity > 0"
	}
	return where, args
}

// Update aplica el patch; los campos nil conservan su valor.
func (r *MovieRepo) Update(ctx context.Context, id string, p entity.MoviePatch) (bool, error) {
	query := `
		UPDATE movies SET
			title        = COALESCE($2, title),
			director     = COALESCE($3, director),
			genre        = COALESCE($4, genre),
			release_year = COALESCE($5, release_year),
			duration     = COALESCE($6, duration),
			description  = COALESCE($7, description),
			rental_rate  = COALESCE($8, rental_rate),
			updated_at   = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, p.Title, p.Director, p.Genre, p.ReleaseYear, p.Duration, p.Description, p.RentalRate)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, fmt.Errorf("update movie: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DecrementStock resta una copia solo si quedan; false si el guard no afectó filas.
func (r *MovieRepo) DecrementStock(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE movies
		SET stock_quantity = stock_quantity - 1,
		    is_available = stock_quantity - 1 > 0,
		    updated_at = now()
		WHERE id = $1 AND stock_quantity > 0`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementStock suma una copia y marca la película disponible.
func (r *MovieRepo) IncrementStock(ctx context.Context, id string) error {
	query := `
		UPDATE movies
		SET stock_quantity = stock_quantity + 1, is_available = true, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

// AddCopies suma n copias al total y al stock.
func (r *MovieRepo) AddCopies(ctx context.Context, id string, n int) error {
	query := `
		UPDATE movies
		SET total_copies = total_copies + $2, stock_quantity = stock_quantity + $2,
		    is_available = stock_quantity + $2 > 0, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, n)
	if err != nil {
		return fmt.Errorf("add copies: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

// Delete elimina la película. Los alquileres históricos la referencian con ON DELETE RESTRICT.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}
