package rental

import (
	"context"
	"time"

	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback de todo; si no, Commit.
type TxRunner interface {
	RunRental(ctx context.Context, fn func(
		movieRepo repository.MovieRepository,
		customerRepo repository.CustomerRepository,
		rentalRepo repository.RentalRepository,
		returnRepo repository.RentalReturnRepository,
	) error) error
}

// Clock provee "ahora"; inyectable para tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj del sistema en la zona configurada (nil = Local).
type SystemClock struct {
	Location *time.Location
}

// Now hora actual en la zona del reloj.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Config parámetros de negocio del ciclo de alquiler.
type Config struct {
	LateFeePerDay decimal.Decimal // 0 = sin recargo; negativo usa rental.DefaultLateFeePerDay
	MaxRentalDays int             // 0 = sin límite
}

// ReturnReceiptData datos para imprimir el comprobante de devolución.
type ReturnReceiptData struct {
	StoreName    string
	Rental       *entity.Rental
	Return       *entity.RentalReturn
	MovieTitle   string
	CustomerName string
	EmployeeName string
}

// ReceiptGenerator genera el comprobante de devolución (PDF) y devuelve sus bytes.
type ReceiptGenerator interface {
	GenerateReturnReceipt(ctx context.Context, data ReturnReceiptData) ([]byte, error)
}
