package repository

import (
	"context"

	"github.com/jhoicas/videoclub-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (login y auditoría).
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByUsername(ctx context.Context, username string) (*entity.Employee, error)
	// UpdatePassword reemplaza el hash. ErrEmployeeNotFound si el id no existe.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
