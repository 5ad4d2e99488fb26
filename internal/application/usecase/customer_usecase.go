package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
)

// CustomerUseCase casos de uso de clientes. La baja es lógica (is_active = false).
type CustomerUseCase struct {
	repo       repository.CustomerRepository
	rentalRepo repository.RentalRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, rentalRepo repository.RentalRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, rentalRepo: rentalRepo}
}

// Create registra un cliente activo. Email único.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.FirstName == "" || in.LastName == "" || !strings.Contains(in.Email, "@") {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	c := &entity.Customer{
		ID:             uuid.New().String(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		DateRegistered: now,
		IsActive:       true,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return toCustomerResponse(c), nil
}

// List busca clientes; por defecto solo activos.
func (uc *CustomerUseCase) List(ctx context.Context, search string, activeOnly bool, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	filter := repository.CustomerFilter{
		Search:     strings.TrimSpace(search),
		ActiveOnly: activeOnly,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update aplica solo los campos enviados.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*in.Email))
		in.Email = &e
	}
	patch := entity.CustomerPatch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
	}
	if !patch.Validate() {
		return nil, domain.ErrInvalidInput
	}
	if in.Email != nil {
		other, err := uc.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	found, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrCustomerNotFound
	}
	return uc.GetByID(ctx, id)
}

// Deactivate da de baja al cliente si no tiene alquileres abiertos.
func (uc *CustomerUseCase) Deactivate(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCustomerNotFound
	}
	open, err := uc.rentalRepo.CountOpenByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ErrConflict
	}
	return uc.repo.SetActive(ctx, id, false)
}

// Reactivate vuelve a habilitar un cliente dado de baja.
func (uc *CustomerUseCase) Reactivate(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCustomerNotFound
	}
	return uc.repo.SetActive(ctx, id, true)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		DateRegistered: c.DateRegistered,
		IsActive:       c.IsActive,
	}
}
