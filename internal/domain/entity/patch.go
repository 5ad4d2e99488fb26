package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoviePatch campos actualizables de una película. nil = no tocar.
// Stock y copias no están aquí: solo cambian vía el libro de inventario.
type MoviePatch struct {
	Title       *string
	Director    *string
	Genre       *string
	ReleaseYear *int
	Duration    *int
	Description *string
	RentalRate  *decimal.Decimal
}

// IsEmpty indica que no hay campos para actualizar.
func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.Director == nil && p.Genre == nil && p.ReleaseYear == nil &&
		p.Duration == nil && p.Description == nil && p.RentalRate == nil
}

// Validate rechaza valores fuera de rango.
func (p MoviePatch) Validate() bool {
	if p.IsEmpty() {
		return false
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return false
	}
	if p.ReleaseYear != nil && (*p.ReleaseYear < 1888 || *p.ReleaseYear > 2100) {
		return false
	}
	if p.Duration != nil && *p.Duration < 0 {
		return false
	}
	if p.RentalRate != nil && p.RentalRate.IsNegative() {
		return false
	}
	return true
}

// CustomerPatch campos actualizables de un cliente. La baja se hace con Deactivate.
type CustomerPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
}

// IsEmpty indica que no hay campos para actualizar.
func (p CustomerPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil && p.Address == nil
}

// Validate rechaza nombres vacíos y emails sin @.
func (p CustomerPatch) Validate() bool {
	if p.IsEmpty() {
		return false
	}
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return false
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return false
	}
	if p.Email != nil && !strings.Contains(*p.Email, "@") {
		return false
	}
	return true
}
