package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/application/rental"
)

// rentalService contrato del ciclo de alquiler que usa el handler. Lo implementa *rental.Service.
type rentalService interface {
	Rent(ctx context.Context, in rental.RentInput) (*dto.RentalSummary, error)
	Return(ctx context.Context, rentalID, employeeID string) (*dto.ReturnSummary, error)
	CalculateLateFee(dueDate time.Time, returnDate *time.Time) dto.LateFeePreview
	PreviewReturn(ctx context.Context, rentalID string) (*dto.LateFeePreview, error)
	Search(ctx context.Context, in dto.RentalSearchRequest) (*dto.RentalListResponse, error)
	ListOverdue(ctx context.Context) ([]dto.RentalResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RentalResponse, error)
	CustomerHistory(ctx context.Context, customerID string, page dto.PageRequest) (*dto.RentalListResponse, error)
	ReturnReceipt(ctx context.Context, rentalID string) ([]byte, error)
}

var _ rentalService = (*rental.Service)(nil)

// overduePromoter barrido de vencidos (rental.Reconciler).
type overduePromoter interface {
	PromoteOverdue(ctx context.Context) (int64, error)
}

// RentalHandler maneja alquileres, devoluciones y recargos (protegido).
type RentalHandler struct {
	svc        rentalService
	reconciler overduePromoter
}

// NewRentalHandler construye el handler.
func NewRentalHandler(svc rentalService, reconciler overduePromoter) *RentalHandler {
	return &RentalHandler{svc: svc, reconciler: reconciler}
}

// Rent godoc
// @Summary      Alquilar una película
// @Tags         rentals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RentRequest  true  "customer_id, movie_id, due_date (YYYY-MM-DD)"
// @Success      201   {object}  dto.RentalSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/rentals [post]
func (h *RentalHandler) Rent(c *fiber.Ctx) error {
	var in dto.RentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CustomerID == "" || in.MovieID == "" || in.DueDate == "" {
		return badRequest(c, "VALIDATION", "customer_id, movie_id y due_date son requeridos")
	}
	due, err := time.Parse(dto.DateLayout, in.DueDate)
	if err != nil {
		return badRequest(c, "VALIDATION", "due_date debe tener formato YYYY-MM-DD")
	}
	out, err := h.svc.Rent(c.UserContext(), rental.RentInput{
		CustomerID: in.CustomerID,
		MovieID:    in.MovieID,
		EmployeeID: GetEmployeeID(c),
		DueDate:    due,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Return godoc
// @Summary      Registrar devolución
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alquiler"
// @Success      200  {object}  dto.ReturnSummary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/return [post]
func (h *RentalHandler) Return(c *fiber.Ctx) error {
	out, err := h.svc.Return(c.UserContext(), c.Params("id"), GetEmployeeID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar alquileres
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  false  "Cliente"
// @Param        movie_id     query  string  false  "Película"
// @Param        status       query  string  false  "active | overdue | returned | all"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.RentalListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/rentals [get]
func (h *RentalHandler) Search(c *fiber.Ctx) error {
	var in dto.RentalSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.svc.Search(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Overdue godoc
// @Summary      Alquileres vencidos
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RentalResponse
// @Router       /api/rentals/overdue [get]
func (h *RentalHandler) Overdue(c *fiber.Ctx) error {
	out, err := h.svc.ListOverdue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener alquiler
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alquiler"
// @Success      200  {object}  dto.RentalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id} [get]
func (h *RentalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PreviewLateFee godoc
// @Summary      Recargo si se devolviera hoy
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alquiler"
// @Success      200  {object}  dto.LateFeePreview
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/late-fee [get]
func (h *RentalHandler) PreviewLateFee(c *fiber.Ctx) error {
	out, err := h.svc.PreviewReturn(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante de devolución (PDF)
// @Tags         rentals
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del alquiler"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/receipt [get]
func (h *RentalHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.svc.ReturnReceipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="devolucion-`+id+`.pdf"`)
	return c.Send(pdf)
}

// Reconcile godoc
// @Summary      Promover vencidos a overdue
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/rentals/reconcile [post]
func (h *RentalHandler) Reconcile(c *fiber.Ctx) error {
	n, err := h.reconciler.PromoteOverdue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{Updated: n, Message: "alquileres vencidos actualizados"})
}

// CustomerHistory godoc
// @Summary      Historial de alquileres de un cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del cliente"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.RentalListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/rentals [get]
func (h *RentalHandler) CustomerHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.svc.CustomerHistory(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CalculateLateFee godoc
// @Summary      Calcular recargo por atraso
// @Description  Cálculo puro: no consulta ni modifica alquileres. return_date vacío = hoy.
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        due_date     query  string  true   "Vencimiento (YYYY-MM-DD)"
// @Param        return_date  query  string  false  "Devolución (YYYY-MM-DD)"
// @Success      200  {object}  dto.LateFeePreview
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/late-fee [get]
func (h *RentalHandler) CalculateLateFee(c *fiber.Ctx) error {
	due, err := time.Parse(dto.DateLayout, c.Query("due_date"))
	if err != nil {
		return badRequest(c, "VALIDATION", "due_date debe tener formato YYYY-MM-DD")
	}
	var ret *time.Time
	if s := c.Query("return_date"); s != "" {
		t, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			return badRequest(c, "VALIDATION", "return_date debe tener formato YYYY-MM-DD")
		}
		ret = &t
	}
	return c.JSON(h.svc.CalculateLateFee(due, ret))
}
