package rental

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLateFeePerDay recargo diario por mora cuando no hay configuración.
var DefaultLateFeePerDay = decimal.NewFromInt(2)

// DateOf trunca t a su fecha civil: medianoche UTC del año/mes/día que t tiene en su propia zona.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween días calendario de from a to (negativo si to es anterior).
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

// RentalDays días cobrables entre la fecha de alquiler y la de vencimiento.
func RentalDays(rentalDate, dueDate time.Time) int {
	return DaysBetween(rentalDate, dueDate)
}

// TotalCharge = tarifa diaria * días, redondeado a centavos.
func TotalCharge(rate decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 || rate.IsNegative() {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// LateFee calcula días de mora y recargo: max(0, devolución - vencimiento) * recargo diario.
func LateFee(dueDate, returnDate time.Time, perDay decimal.Decimal) (int, decimal.Decimal) {
	days := DaysBetween(dueDate, returnDate)
	if days <= 0 {
		return 0, decimal.Zero
	}
	return days, perDay.Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// TotalPaid cargo original más recargo.
func TotalPaid(totalCharge, lateFee decimal.Decimal) decimal.Decimal {
	return totalCharge.Add(lateFee).Round(2)
}
