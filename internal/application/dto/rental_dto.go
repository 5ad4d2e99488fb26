package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentRequest body para POST /api/rentals. El empleado sale del token.
type RentRequest struct {
	CustomerID string `json:"customer_id"`
	MovieID    string `json:"movie_id"`
	DueDate    string `json:"due_date"` // YYYY-MM-DD
}

// RentalSummary resultado de un alquiler nuevo.
type RentalSummary struct {
	RentalID    string          `json:"rental_id"`
	CustomerID  string          `json:"customer_id"`
	MovieID     string          `json:"movie_id"`
	MovieTitle  string          `json:"movie_title"`
	EmployeeID  string          `json:"employee_id"`
	RentalDate  time.Time       `json:"rental_date"`
	DueDate     string          `json:"due_date"`
	RentalDays  int             `json:"rental_days"`
	TotalCharge decimal.Decimal `json:"total_charge"`
	Status      string          `json:"status"`
	Message     string          `json:"message"`
}

// ReturnSummary resultado de una devolución.
type ReturnSummary struct {
	ReturnID       string          `json:"return_id"`
	RentalID       string          `json:"rental_id"`
	MovieTitle     string          `json:"movie_title"`
	RentalDate     time.Time       `json:"rental_date"`
	DueDate        string          `json:"due_date"`
	ReturnDate     time.Time       `json:"return_date"`
	LateDays       int             `json:"late_days"`
	LateFee        decimal.Decimal `json:"late_fee"`
	OriginalCharge decimal.Decimal `json:"original_charge"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	OnTime         bool            `json:"on_time"`
	Message        string          `json:"message"`
}

// LateFeePreview proyección del recargo sin registrar la devolución.
type LateFeePreview struct {
	RentalID      string          `json:"rental_id,omitempty"`
	DueDate       string          `json:"due_date"`
	ReturnDate    string          `json:"return_date"`
	LateDays      int             `json:"late_days"`
	LateFee       decimal.Decimal `json:"late_fee"`
	LateFeePerDay decimal.Decimal `json:"late_fee_per_day"`
	TotalCharge   decimal.Decimal `json:"total_charge,omitempty"`
	TotalDue      decimal.Decimal `json:"total_due,omitempty"`
}

// RentalSearchRequest query params de GET /api/rentals.
type RentalSearchRequest struct {
	CustomerID string `query:"customer_id"`
	MovieID    string `query:"movie_id"`
	Status     string `query:"status"`
	From       string `query:"from"` // YYYY-MM-DD
	To         string `query:"to"`   // YYYY-MM-DD
	PageRequest
}

// RentalResponse fila de alquiler para listados.
type RentalResponse struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name,omitempty"`
	MovieID          string          `json:"movie_id"`
	MovieTitle       string          `json:"movie_title,omitempty"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	RentalDate       time.Time       `json:"rental_date"`
	DueDate          string          `json:"due_date"`
	ActualReturnDate *string         `json:"actual_return_date,omitempty"`
	TotalCharge      decimal.Decimal `json:"total_charge"`
	LateFee          decimal.Decimal `json:"late_fee"`
	Status           string          `json:"status"`
	DaysOverdue      int             `json:"days_overdue,omitempty"`
}

// RentalListResponse listado con metadatos de página.
type RentalListResponse struct {
	Items []RentalResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ReconcileResponse resultado de la promoción a overdue.
type ReconcileResponse struct {
	Updated int64  `json:"updated"`
	Message string `json:"message"`
}
