package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un alquiler. returned es terminal.
const (
	RentalStatusActive   = "active"
	RentalStatusOverdue  = "overdue"
	RentalStatusReturned = "returned"
)

// Rental un préstamo de una copia de película a un cliente, registrado por un empleado.
type Rental struct {
	ID               string
	CustomerID       string
	MovieID          string
	EmployeeID       string
	RentalDate       time.Time
	DueDate          time.Time // fecha (medianoche), estrictamente posterior a RentalDate
	ActualReturnDate *time.Time
	TotalCharge      decimal.Decimal // tarifa * días, calculado al crear
	LateFee          decimal.Decimal // 0 hasta la devolución
	Status           string
	CreatedAt        time.Time
}

// IsOpen indica si el alquiler todavía admite devolución.
func (r *Rental) IsOpen() bool {
	return r.Status == RentalStatusActive || r.Status == RentalStatusOverdue
}

// RentalView fila de consulta con nombres resueltos (listados y reportes).
type RentalView struct {
	Rental
	CustomerName string
	MovieTitle   string
	EmployeeName string
	DaysOverdue  int
}
