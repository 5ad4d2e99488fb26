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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un empleado. Username único.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, username, password_hash, first_name, last_name, email, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Username, e.PasswordHash, e.FirstName, e.LastName, e.Email, e.Role, e.IsActive, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return r.getOne(ctx, "id", id)
}

// GetByUsername obtiene un empleado por username (login).
func (r *EmployeeRepo) GetByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	return r.getOne(ctx, "username", username)
}

// UpdatePassword reemplaza el hash del empleado.
func (r *EmployeeRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.q.Exec(ctx, `UPDATE employees SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update employee password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepo) getOne(ctx context.Context, column, value string) (*entity.Employee, error) {
	query := `
		SELECT id, username, password_hash, first_name, last_name, email, role, is_active, created_at
		FROM employees WHERE ` + column + ` = $1`
	var e entity.Employee
	err := r.q.QueryRow(ctx, query, value).Scan(
		&e.ID, &e.Username, &e.PasswordHash, &e.FirstName, &e.LastName, &e.Email, &e.Role, &e.IsActive, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}
