package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
)

// Restocker agrega copias a una película (lo implementa rental.Service, dueño del stock).
type Restocker interface {
	Restock(ctx context.Context, movieID string, n int) (*entity.Movie, error)
}

// MovieUseCase casos de uso del catálogo. Stock y copias se manejan vía el libro de inventario.
type MovieUseCase struct {
	repo       repository.MovieRepository
	rentalRepo repository.RentalRepository
	restocker  Restocker
}

// NewMovieUseCase construye el caso de uso.
func NewMovieUseCase(repo repository.MovieRepository, rentalRepo repository.RentalRepository, restocker Restocker) *MovieUseCase {
	return &MovieUseCase{repo: repo, rentalRepo: rentalRepo, restocker: restocker}
}

// Create agrega una película; todas sus copias arrancan en tienda.
func (uc *MovieUseCase) Create(ctx context.Context, in dto.CreateMovieRequest) (*dto.MovieResponse, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.RentalRate.IsNegative() || in.TotalCopies < 0 || in.Duration < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByTitleAndDirector(ctx, in.Title, in.Director)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	movie := &entity.Movie{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Director:      in.Director,
		Genre:         in.Genre,
		ReleaseYear:   in.ReleaseYear,
		Duration:      in.Duration,
		Description:   in.Description,
		RentalRate:    in.RentalRate.Round(2),
		StockQuantity: in.TotalCopies,
		TotalCopies:   in.TotalCopies,
		IsAvailable:   in.TotalCopies > 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, movie); err != nil {
		return nil, err
	}
	return toMovieResponse(movie), nil
}

// GetByID obtiene una película por ID.
func (uc *MovieUseCase) GetByID(ctx context.Context, id string) (*dto.MovieResponse, error) {
	movie, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, domain.ErrMovieNotFound
	}
	return toMovieResponse(movie), nil
}

// Update aplica solo los campos enviados.
func (uc *MovieUseCase) Update(ctx context.Context, id string, in dto.UpdateMovieRequest) (*dto.MovieResponse, error) {
	patch := entity.MoviePatch{
		Title:       in.Title,
		Director:    in.Director,
		Genre:       in.Genre,
		ReleaseYear: in.ReleaseYear,
		Duration:    in.Duration,
		Description: in.Description,
		RentalRate:  in.RentalRate,
	}
	if !patch.Validate() {
		return nil, domain.ErrInvalidInput
	}
	found, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrMovieNotFound
	}
	return uc.GetByID(ctx, id)
}

// AddCopies incorpora copias nuevas.
func (uc *MovieUseCase) AddCopies(ctx context.Context, id string, n int) (*dto.MovieResponse, error) {
	movie, err := uc.restocker.Restock(ctx, id, n)
	if err != nil {
		return nil, err
	}
	return toMovieResponse(movie), nil
}

// List lista el catálogo con búsqueda y paginación.
func (uc *MovieUseCase) List(ctx context.Context, search, genre string, availableOnly bool, page dto.PageRequest) (*dto.MovieListResponse, error) {
	page.DefaultPage()
	filter := repository.MovieFilter{
		Search:        strings.TrimSpace(search),
		Genre:         genre,
		AvailableOnly: availableOnly,
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovieResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovieResponse(m))
	}
	return &dto.MovieListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina una película sin alquileres abiertos.
func (uc *MovieUseCase) Delete(ctx context.Context, id string) error {
	movie, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if movie == nil {
		return domain.ErrMovieNotFound
	}
	open, err := uc.rentalRepo.CountOpenByMovie(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

func toMovieResponse(m *entity.Movie) *dto.MovieResponse {
	return &dto.MovieResponse{
		ID:            m.ID,
		Title:         m.Title,
		Director:      m.Director,
		Genre:         m.Genre,
		ReleaseYear:   m.ReleaseYear,
		Duration:      m.Duration,
		Description:   m.Description,
		RentalRate:    m.RentalRate,
		StockQuantity: m.StockQuantity,
		TotalCopies:   m.TotalCopies,
		IsAvailable:   m.IsAvailable,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
