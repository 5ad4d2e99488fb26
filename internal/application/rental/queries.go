package rental

import (
	"context"
	"time"

	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/rental"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
)

// Search busca alquileres con filtros opcionales. Antes de leer promueve los vencidos
// para que el estado devuelto esté al día.
func (s *Service) Search(ctx context.Context, in dto.RentalSearchRequest) (*dto.RentalListResponse, error) {
	in.DefaultPage()
	filter := repository.RentalFilter{
		CustomerID: in.CustomerID,
		MovieID:    in.MovieID,
		Status:     in.Status,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	switch in.Status {
	case "", "all":
		filter.Status = ""
	case entity.RentalStatusActive, entity.RentalStatusOverdue, entity.RentalStatusReturned:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.From != "" {
		t, err := time.Parse(dto.DateLayout, in.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &t
	}
	if in.To != "" {
		t, err := time.Parse(dto.DateLayout, in.To)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// rental_date es timestamp: incluir todo el día To
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.reconciler.PromoteOverdue(ctx); err != nil {
		return nil, err
	}
	rows, err := s.rentalRepo.Search(ctx, filter)
	if err != nil {
		return nil, s.fail("búsqueda", domain.Persistence(err), "")
	}
	total, err := s.rentalRepo.Count(ctx, filter)
	if err != nil {
		return nil, s.fail("búsqueda", domain.Persistence(err), "")
	}
	items := make([]dto.RentalResponse, 0, len(rows))
	for _, v := range rows {
		items = append(items, toRentalResponse(v))
	}
	return &dto.RentalListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ListActive alquileres abiertos y no vencidos.
func (s *Service) ListActive(ctx context.Context, page dto.PageRequest) (*dto.RentalListResponse, error) {
	return s.Search(ctx, dto.RentalSearchRequest{Status: entity.RentalStatusActive, PageRequest: page})
}

// CustomerHistory historial completo de un cliente.
func (s *Service) CustomerHistory(ctx context.Context, customerID string, page dto.PageRequest) (*dto.RentalListResponse, error) {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, s.fail("historial", domain.Persistence(err), customerID)
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return s.Search(ctx, dto.RentalSearchRequest{CustomerID: customerID, PageRequest: page})
}

// ListOverdue alquileres abiertos con due_date anterior a hoy, del más atrasado al menos.
func (s *Service) ListOverdue(ctx context.Context) ([]dto.RentalResponse, error) {
	if _, err := s.reconciler.PromoteOverdue(ctx); err != nil {
		return nil, err
	}
	today := rental.DateOf(s.clock.Now())
	rows, err := s.rentalRepo.ListOverdue(ctx, today)
	if err != nil {
		return nil, s.fail("vencidos", domain.Persistence(err), "")
	}
	out := make([]dto.RentalResponse, 0, len(rows))
	for _, v := range rows {
		if v.DaysOverdue == 0 {
			v.DaysOverdue = rental.DaysBetween(v.DueDate, today)
		}
		out = append(out, toRentalResponse(v))
	}
	return out, nil
}

// GetByID obtiene un alquiler (estado reconciliado).
func (s *Service) GetByID(ctx context.Context, id string) (*dto.RentalResponse, error) {
	if _, err := s.reconciler.PromoteOverdue(ctx); err != nil {
		return nil, err
	}
	r, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("consulta", domain.Persistence(err), id)
	}
	if r == nil {
		return nil, domain.ErrRentalNotFound
	}
	resp := toRentalResponse(&entity.RentalView{Rental: *r})
	return &resp, nil
}

func toRentalResponse(v *entity.RentalView) dto.RentalResponse {
	resp := dto.RentalResponse{
		ID:           v.ID,
		CustomerID:   v.CustomerID,
		CustomerName: v.CustomerName,
		MovieID:      v.MovieID,
		MovieTitle:   v.MovieTitle,
		EmployeeID:   v.EmployeeID,
		EmployeeName: v.EmployeeName,
		RentalDate:   v.RentalDate,
		DueDate:      v.DueDate.Format(dto.DateLayout),
		TotalCharge:  v.TotalCharge,
		LateFee:      v.LateFee,
		Status:       v.Status,
		DaysOverdue:  v.DaysOverdue,
	}
	if v.ActualReturnDate != nil {
		d := v.ActualReturnDate.Format(dto.DateLayout)
		resp.ActualReturnDate = &d
	}
	return resp
}
