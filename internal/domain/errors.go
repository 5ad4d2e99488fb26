package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	ErrEmployeeNotFound = errors.New("empleado no encontrado")
)

// Errores del ciclo de alquiler. Cada uno pertenece a un Kind (ver KindOf).
var (
	ErrCustomerNotFound = errors.New("cliente no encontrado")
	ErrCustomerInactive = errors.New("la cuenta del cliente está inactiva")
	ErrMovieNotFound    = errors.New("película no encontrada")
	ErrMovieUnavailable = errors.New("la película no está disponible para alquiler")
	ErrInvalidDueDate   = errors.New("la fecha de devolución debe ser posterior a hoy")
	ErrRentalNotFound   = errors.New("alquiler no encontrado")
	// ErrRentalAlreadyReturned también satisface errors.Is(err, ErrRentalNotFound).
	ErrRentalAlreadyReturned = &wrappedError{msg: "el alquiler ya fue devuelto", inner: ErrRentalNotFound}
	// ErrStockConflict se produce cuando el UPDATE protegido de stock no afecta filas
	// (otra transacción tomó la última copia). Satisface errors.Is(err, ErrMovieUnavailable).
	ErrStockConflict = &wrappedError{msg: "otra transacción tomó la última copia", inner: ErrMovieUnavailable}
	ErrPersistence   = errors.New("error de persistencia")
)

// Kind clasifica errores del núcleo de alquileres.
type Kind string

const (
	KindNone                Kind = ""
	KindNotFound            Kind = "NOT_FOUND"
	KindPreconditionFailed  Kind = "PRECONDITION_FAILED"
	KindConcurrencyConflict Kind = "CONCURRENCY_CONFLICT"
	KindPersistenceFailure  Kind = "PERSISTENCE_FAILURE"
)

// KindOf devuelve el Kind de err; KindNone si no es un error conocido.
// El orden importa: los errores envueltos se evalúan antes que su sentinel interno.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrStockConflict):
		return KindConcurrencyConflict
	case errors.Is(err, ErrRentalAlreadyReturned),
		errors.Is(err, ErrCustomerInactive),
		errors.Is(err, ErrMovieUnavailable),
		errors.Is(err, ErrInvalidDueDate),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrConflict):
		return KindPreconditionFailed
	case errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrMovieNotFound),
		errors.Is(err, ErrRentalNotFound),
		errors.Is(err, ErrEmployeeNotFound),
		errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPersistence):
		return KindPersistenceFailure
	}
	return KindNone
}

// Persistence envuelve un error del almacén para que KindOf lo reconozca
// sin perder el mensaje original.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return &persistenceError{cause: err}
}

type persistenceError struct {
	cause error
}

func (e *persistenceError) Error() string { return ErrPersistence.Error() + ": " + e.cause.Error() }

func (e *persistenceError) Unwrap() []error { return []error{ErrPersistence, e.cause} }

type wrappedError struct {
	msg   string
	inner error
}

func (e *wrappedError) Error() string { return e.msg }

func (e *wrappedError) Unwrap() error { return e.inner }
