package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/application/usecase"
)

// MovieHandler maneja las peticiones HTTP del catálogo (protegido).
type MovieHandler struct {
	uc *usecase.MovieUseCase
}

// NewMovieHandler construye el handler.
func NewMovieHandler(uc *usecase.MovieUseCase) *MovieHandler {
	return &MovieHandler{uc: uc}
}

// Create godoc
// @Summary      Crear película
// @Tags         movies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovieRequest  true  "title, director, rental_rate, total_copies"
// @Success      201   {object}  dto.MovieResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movies [post]
func (h *MovieHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovieRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener película
// @Tags         movies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la película"
// @Success      200  {object}  dto.MovieResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movies/{id} [get]
func (h *MovieHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar catálogo
// @Tags         movies
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda por título, director o género"
// @Param        genre      query  string  false  "Género exacto"
// @Param        available  query  bool    false  "Solo con copias en tienda"
// @Param        limit      query  int     false  "Límite"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovieListResponse
// @Router       /api/movies [get]
func (h *MovieHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), c.Query("q"), c.Query("genre"), c.QueryBool("available", false), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar película
// @Description  Solo datos de catálogo; stock y copias se manejan con /copies y con alquileres.
// @Tags         movies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la película"
// @Param        body  body  dto.UpdateMovieRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MovieResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movies/{id} [put]
func (h *MovieHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovieRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddCopies godoc
// @Summary      Agregar copias
// @Tags         movies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la película"
// @Param        body  body  dto.AddCopiesRequest  true  "copies > 0"
// @Success      200   {object}  dto.MovieResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movies/{id}/copies [post]
func (h *MovieHandler) AddCopies(c *fiber.Ctx) error {
	var in dto.AddCopiesRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AddCopies(c.UserContext(), c.Params("id"), in.Copies)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar película
// @Tags         movies
// @Security     Bearer
// @Param        id   path  string  true  "ID de la película"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movies/{id} [delete]
func (h *MovieHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
