package repository

import (
	"context"

	"github.com/jhoicas/videoclub-api/internal/domain/entity"
)

// CustomerFilter filtros de búsqueda de clientes.
type CustomerFilter struct {
	Search     string // nombre, apellido, email o teléfono
	ActiveOnly bool
	Limit      int
	Offset     int
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, error)
	Count(ctx context.Context, filter CustomerFilter) (int, error)
	Update(ctx context.Context, id string, patch entity.CustomerPatch) (bool, error)
	SetActive(ctx context.Context, id string, active bool) error
}
