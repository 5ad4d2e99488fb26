package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovieRequest body para POST /api/movies.
type CreateMovieRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Director    string          `json:"director"`
	Genre       string          `json:"genre"`
	ReleaseYear int             `json:"release_year"`
	Duration    int             `json:"duration"`
	Description string          `json:"description"`
	RentalRate  decimal.Decimal `json:"rental_rate"`
	TotalCopies int             `json:"total_copies"`
}

// UpdateMovieRequest body para PUT /api/movies/:id (todos opcionales).
type UpdateMovieRequest struct {
	Title       *string          `json:"title,omitempty"`
	Director    *string          `json:"director,omitempty"`
	Genre       *string          `json:"genre,omitempty"`
	ReleaseYear *int             `json:"release_year,omitempty"`
	Duration    *int             `json:"duration,omitempty"`
	Description *string          `json:"description,omitempty"`
	RentalRate  *decimal.Decimal `json:"rental_rate,omitempty"`
}

// AddCopiesRequest body para POST /api/movies/:id/copies.
type AddCopiesRequest struct {
	Copies int `json:"copies"`
}

// MovieResponse salida de una película.
type MovieResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Director      string          `json:"director"`
	Genre         string          `json:"genre"`
	ReleaseYear   int             `json:"release_year"`
	Duration      int             `json:"duration"`
	Description   string          `json:"description"`
	RentalRate    decimal.Decimal `json:"rental_rate"`
	StockQuantity int             `json:"stock_quantity"`
	TotalCopies   int             `json:"total_copies"`
	IsAvailable   bool            `json:"is_available"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MovieListResponse listado paginado.
type MovieListResponse struct {
	Items []MovieResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
