package rental

import (
	"context"

	"github.com/jhoicas/videoclub-api/internal/domain"
)

// ReturnReceipt genera el comprobante PDF de una devolución ya registrada.
func (s *Service) ReturnReceipt(ctx context.Context, rentalID string) ([]byte, error) {
	if s.receipts == nil {
		return nil, domain.ErrNotFound
	}
	r, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, s.fail("comprobante", domain.Persistence(err), rentalID)
	}
	if r == nil {
		return nil, domain.ErrRentalNotFound
	}
	ret, err := s.returnRepo.GetByRentalID(ctx, rentalID)
	if err != nil {
		return nil, s.fail("comprobante", domain.Persistence(err), rentalID)
	}
	if ret == nil {
		// todavía abierto: no hay devolución que imprimir
		return nil, domain.ErrConflict
	}

	data := ReturnReceiptData{StoreName: s.storeName, Rental: r, Return: ret}
	if m, err := s.movieRepo.GetByID(ctx, r.MovieID); err == nil && m != nil {
		data.MovieTitle = m.Title
	}
	if c, err := s.customerRepo.GetByID(ctx, r.CustomerID); err == nil && c != nil {
		data.CustomerName = c.FullName()
	}
	if s.employeeRepo != nil {
		if e, err := s.employeeRepo.GetByID(ctx, ret.ProcessedBy); err == nil && e != nil {
			data.EmployeeName = e.FullName()
		}
	}
	return s.receipts.GenerateReturnReceipt(ctx, data)
}
