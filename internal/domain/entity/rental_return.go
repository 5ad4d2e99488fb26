package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalReturn registro inmutable de la devolución de un alquiler (uno por alquiler).
type RentalReturn struct {
	ID          string
	RentalID    string
	ReturnDate  time.Time
	LateDays    int
	LateFee     decimal.Decimal
	TotalPaid   decimal.Decimal // TotalCharge del alquiler + LateFee
	ProcessedBy string
}
