package usecase

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeMovies struct {
	repository.MovieRepository
	byID map[string]*entity.Movie
}

func (f *fakeMovies) Create(_ context.Context, m *entity.Movie) error {
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMovies) GetByID(_ context.Context, id string) (*entity.Movie, error) {
	return f.byID[id], nil
}

func (f *fakeMovies) GetByTitleAndDirector(_ context.Context, title, director string) (*entity.Movie, error) {
	for _, m := range f.byID {
		if strings.EqualFold(m.Title, title) && strings.EqualFold(m.Director, director) {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovies) matching(filter repository.MovieFilter) []*entity.Movie {
	var out []*entity.Movie
	for _, m := range f.byID {
		if filter.AvailableOnly && m.StockQuantity <= 0 {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (f *fakeMovies) List(_ context.Context, filter repository.MovieFilter) ([]*entity.Movie, error) {
	out := f.matching(filter)
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeMovies) Count(_ context.Context, filter repository.MovieFilter) (int, error) {
	return len(f.matching(filter)), nil
}

func (f *fakeMovies) Update(_ context.Context, id string, p entity.MoviePatch) (bool, error) {
	m, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.RentalRate != nil {
		m.RentalRate = *p.RentalRate
	}
	if p.ReleaseYear != nil {
		m.ReleaseYear = *p.ReleaseYear
	}
	return true, nil
}

func (f *fakeMovies) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeCustomers struct {
	byID map[string]*entity.Customer
}

func (f *fakeCustomers) Create(_ context.Context, c *entity.Customer) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return f.byID[id], nil
}

func (f *fakeCustomers) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range f.byID {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) List(_ context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.byID {
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomers) Count(ctx context.Context, filter repository.CustomerFilter) (int, error) {
	list, err := f.List(ctx, filter)
	return len(list), err
}

func (f *fakeCustomers) Update(_ context.Context, id string, p entity.CustomerPatch) (bool, error) {
	c, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	return true, nil
}

func (f *fakeCustomers) SetActive(_ context.Context, id string, active bool) error {
	f.byID[id].IsActive = active
	return nil
}

type fakeRentals struct {
	repository.RentalRepository
	openByMovie    map[string]int
	openByCustomer map[string]int
}

func (f *fakeRentals) CountOpenByMovie(_ context.Context, id string) (int, error) {
	return f.openByMovie[id], nil
}

func (f *fakeRentals) CountOpenByCustomer(_ context.Context, id string) (int, error) {
	return f.openByCustomer[id], nil
}

type fakeRestocker struct {
	movies *fakeMovies
}

func (f *fakeRestocker) Restock(_ context.Context, id string, n int) (*entity.Movie, error) {
	if n <= 0 {
		return nil, domain.ErrInvalidInput
	}
	m := f.movies.byID[id]
	if m == nil {
		return nil, domain.ErrMovieNotFound
	}
	m.StockQuantity += n
	m.TotalCopies += n
	return m, nil
}

func newCatalog() (*MovieUseCase, *fakeMovies, *fakeRentals) {
	movies := &fakeMovies{byID: map[string]*entity.Movie{}}
	rentals := &fakeRentals{openByMovie: map[string]int{}, openByCustomer: map[string]int{}}
	return NewMovieUseCase(movies, rentals, &fakeRestocker{movies: movies}), movies, rentals
}

// ── Películas ────────────────────────────────────────────────────────────────

func TestMovieCreate_StockIgualACopias(t *testing.T) {
	uc, _, _ := newCatalog()

	out, err := uc.Create(context.Background(), dto.CreateMovieRequest{
		Title:       "  Amores perros ",
		Director:    "Alejandro G. Iñárritu",
		ReleaseYear: 2000,
		RentalRate:  decimal.RequireFromString("2.999"),
		TotalCopies: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Amores perros", out.Title)
	assert.Equal(t, 3, out.StockQuantity)
	assert.Equal(t, 3, out.TotalCopies)
	assert.True(t, out.IsAvailable)
	assert.True(t, out.RentalRate.Equal(decimal.NewFromInt(3)))
}

func TestMovieCreate_Duplicada(t *testing.T) {
	uc, _, _ := newCatalog()
	in := dto.CreateMovieRequest{Title: "Nueve reinas", Director: "Fabián Bielinsky", RentalRate: decimal.NewFromInt(2), TotalCopies: 1}
	_, err := uc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMovieCreate_Invalida(t *testing.T) {
	uc, _, _ := newCatalog()
	cases := []dto.CreateMovieRequest{
		{Title: "   ", TotalCopies: 1},
		{Title: "X", RentalRate: decimal.NewFromInt(-1)},
		{Title: "X", TotalCopies: -2},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestMovieUpdate_Parcial(t *testing.T) {
	uc, _, _ := newCatalog()
	m, err := uc.Create(context.Background(), dto.CreateMovieRequest{Title: "Relatos salvajes", RentalRate: decimal.NewFromInt(3), TotalCopies: 2})
	require.NoError(t, err)

	rate := decimal.RequireFromString("3.50")
	out, err := uc.Update(context.Background(), m.ID, dto.UpdateMovieRequest{RentalRate: &rate})
	require.NoError(t, err)
	assert.True(t, out.RentalRate.Equal(rate))
	assert.Equal(t, "Relatos salvajes", out.Title)
	assert.Equal(t, 2, out.StockQuantity)
}

func TestMovieUpdate_Errores(t *testing.T) {
	uc, _, _ := newCatalog()
	year := 1500
	_, err := uc.Update(context.Background(), "m-x", dto.UpdateMovieRequest{ReleaseYear: &year})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), "m-x", dto.UpdateMovieRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	title := "Otra"
	_, err = uc.Update(context.Background(), "m-x", dto.UpdateMovieRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
}

func TestMovieAddCopies_DelegaEnInventario(t *testing.T) {
	uc, _, _ := newCatalog()
	m, err := uc.Create(context.Background(), dto.CreateMovieRequest{Title: "La historia oficial", TotalCopies: 1})
	require.NoError(t, err)

	out, err := uc.AddCopies(context.Background(), m.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, out.StockQuantity)
	assert.Equal(t, 3, out.TotalCopies)

	_, err = uc.AddCopies(context.Background(), m.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovieDelete_ConAlquileresAbiertos(t *testing.T) {
	uc, movies, rentals := newCatalog()
	m, err := uc.Create(context.Background(), dto.CreateMovieRequest{Title: "El secreto de sus ojos", TotalCopies: 1})
	require.NoError(t, err)
	rentals.openByMovie[m.ID] = 1

	assert.ErrorIs(t, uc.Delete(context.Background(), m.ID), domain.ErrConflict)

	rentals.openByMovie[m.ID] = 0
	require.NoError(t, uc.Delete(context.Background(), m.ID))
	assert.Empty(t, movies.byID)
	assert.ErrorIs(t, uc.Delete(context.Background(), m.ID), domain.ErrMovieNotFound)
}

func TestMovieList_SoloDisponibles(t *testing.T) {
	uc, movies, _ := newCatalog()
	movies.byID["a"] = &entity.Movie{ID: "a", Title: "Con stock", StockQuantity: 1}
	movies.byID["b"] = &entity.Movie{ID: "b", Title: "Sin stock", StockQuantity: 0}

	out, err := uc.List(context.Background(), "", "", true, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "a", out.Items[0].ID)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestMovieList_TotalNoDependeDeLaPagina(t *testing.T) {
	uc, movies, _ := newCatalog()
	for _, title := range []string{"Brazil", "Alien", "Casablanca"} {
		movies.byID[title] = &entity.Movie{ID: title, Title: title, StockQuantity: 1}
	}

	out, err := uc.List(context.Background(), "", "", false, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Casablanca", out.Items[0].Title)
	assert.Equal(t, 3, out.Page.Total)
}

// ── Clientes ─────────────────────────────────────────────────────────────────

func newCustomers() (*CustomerUseCase, *fakeCustomers, *fakeRentals) {
	customers := &fakeCustomers{byID: map[string]*entity.Customer{}}
	rentals := &fakeRentals{openByMovie: map[string]int{}, openByCustomer: map[string]int{}}
	return NewCustomerUseCase(customers, rentals), customers, rentals
}

func TestCustomerCreate_EmailNormalizadoYUnico(t *testing.T) {
	uc, _, _ := newCustomers()

	c, err := uc.Create(context.Background(), dto.CreateCustomerRequest{FirstName: "Ana", LastName: "Ruiz", Email: " Ana@Mail.com "})
	require.NoError(t, err)
	assert.Equal(t, "ana@mail.com", c.Email)
	assert.True(t, c.IsActive)

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{FirstName: "Otra", LastName: "Ana", Email: "ana@mail.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{FirstName: "Sin", LastName: "Mail", Email: "nomail"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerUpdate_EmailDeOtroCliente(t *testing.T) {
	uc, _, _ := newCustomers()
	a, err := uc.Create(context.Background(), dto.CreateCustomerRequest{FirstName: "Ana", LastName: "Ruiz", Email: "ana@mail.com"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{FirstName: "Luis", LastName: "Paz", Email: "luis@mail.com"})
	require.NoError(t, err)

	taken := "luis@mail.com"
	_, err = uc.Update(context.Background(), a.ID, dto.UpdateCustomerRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	phone := "555-0101"
	out, err := uc.Update(context.Background(), a.ID, dto.UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0101", out.Phone)
}

func TestCustomerDeactivate(t *testing.T) {
	uc, customers, rentals := newCustomers()
	c, err := uc.Create(context.Background(), dto.CreateCustomerRequest{FirstName: "Ana", LastName: "Ruiz", Email: "ana@mail.com"})
	require.NoError(t, err)

	rentals.openByCustomer[c.ID] = 2
	assert.ErrorIs(t, uc.Deactivate(context.Background(), c.ID), domain.ErrConflict)
	assert.True(t, customers.byID[c.ID].IsActive)

	rentals.openByCustomer[c.ID] = 0
	require.NoError(t, uc.Deactivate(context.Background(), c.ID))
	assert.False(t, customers.byID[c.ID].IsActive)

	list, err := uc.List(context.Background(), "", true, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	require.NoError(t, uc.Reactivate(context.Background(), c.ID))
	assert.True(t, customers.byID[c.ID].IsActive)

	assert.ErrorIs(t, uc.Deactivate(context.Background(), "c-x"), domain.ErrCustomerNotFound)
}
