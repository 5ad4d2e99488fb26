package rental_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore base de datos en memoria. txMu serializa las transacciones (equivale al
// bloqueo de fila del motor real); dataMu protege los mapas en cada llamada.
type memStore struct {
	txMu   sync.Mutex
	dataMu sync.Mutex

	movies    map[string]entity.Movie
	customers map[string]entity.Customer
	employees map[string]entity.Employee
	rentals   map[string]entity.Rental
	returns   map[string]entity.RentalReturn // por rental_id

	failReturnCreate error
	failRentalCreate error
	failCommit       error
	promoteCalls     int
}

func newMemStore() *memStore {
	return &memStore{
		movies:    map[string]entity.Movie{},
		customers: map[string]entity.Customer{},
		employees: map[string]entity.Employee{},
		rentals:   map[string]entity.Rental{},
		returns:   map[string]entity.RentalReturn{},
	}
}

type snapshot struct {
	movies  map[string]entity.Movie
	rentals map[string]entity.Rental
	returns map[string]entity.RentalReturn
}

func (s *memStore) snapshot() snapshot {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	snap := snapshot{
		movies:  make(map[string]entity.Movie, len(s.movies)),
		rentals: make(map[string]entity.Rental, len(s.rentals)),
		returns: make(map[string]entity.RentalReturn, len(s.returns)),
	}
	for k, v := range s.movies {
		snap.movies[k] = v
	}
	for k, v := range s.rentals {
		snap.rentals[k] = v
	}
	for k, v := range s.returns {
		snap.returns[k] = v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.movies = snap.movies
	s.rentals = snap.rentals
	s.returns = snap.returns
}

// RunRental implementa rental.TxRunner con rollback por snapshot.
func (s *memStore) RunRental(ctx context.Context, fn func(
	movieRepo repository.MovieRepository,
	customerRepo repository.CustomerRepository,
	rentalRepo repository.RentalRepository,
	returnRepo repository.RentalReturnRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(memMovies{s}, memCustomers{s}, memRentals{s}, memReturns{s}); err != nil {
		s.restore(snap)
		return err
	}
	if s.failCommit != nil {
		s.restore(snap)
		return s.failCommit
	}
	return nil
}

func (s *memStore) movie(id string) entity.Movie {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	return s.movies[id]
}

func (s *memStore) rental(id string) (entity.Rental, bool) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	r, ok := s.rentals[id]
	return r, ok
}

func (s *memStore) countReturns() int {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	return len(s.returns)
}

func (s *memStore) countRentals() int {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	return len(s.rentals)
}

// ── movies ───────────────────────────────────────────────────────────────────

type memMovies struct{ s *memStore }

func (m memMovies) Create(_ context.Context, movie *entity.Movie) error {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	m.s.movies[movie.ID] = *movie
	return nil
}

func (m memMovies) GetByID(_ context.Context, id string) (*entity.Movie, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	mv, ok := m.s.movies[id]
	if !ok {
		return nil, nil
	}
	return &mv, nil
}

func (m memMovies) GetByTitleAndDirector(_ context.Context, title, director string) (*entity.Movie, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	for _, mv := range m.s.movies {
		if mv.Title == title && mv.Director == director {
			found := mv
			return &found, nil
		}
	}
	return nil, nil
}

func (m memMovies) GetForUpdate(ctx context.Context, id string) (*entity.Movie, error) {
	return m.GetByID(ctx, id)
}

func (m memMovies) List(_ context.Context, f repository.MovieFilter) ([]*entity.Movie, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	var out []*entity.Movie
	for _, mv := range m.s.movies {
		if f.AvailableOnly && !mv.IsAvailable {
			continue
		}
		found := mv
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m memMovies) Count(ctx context.Context, f repository.MovieFilter) (int, error) {
	list, err := m.List(ctx, f)
	return len(list), err
}

func (m memMovies) Update(_ context.Context, id string, p entity.MoviePatch) (bool, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	mv, ok := m.s.movies[id]
	if !ok {
		return false, nil
	}
	if p.Title != nil {
		mv.Title = *p.Title
	}
	if p.RentalRate != nil {
		mv.RentalRate = *p.RentalRate
	}
	m.s.movies[id] = mv
	return true, nil
}

func (m memMovies) DecrementStock(_ context.Context, id string) (bool, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	mv, ok := m.s.movies[id]
	if !ok || mv.StockQuantity <= 0 {
		return false, nil
	}
	mv.StockQuantity--
	mv.IsAvailable = mv.StockQuantity > 0
	m.s.movies[id] = mv
	return true, nil
}

func (m memMovies) IncrementStock(_ context.Context, id string) error {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	mv := m.s.movies[id]
	mv.StockQuantity++
	mv.IsAvailable = true
	m.s.movies[id] = mv
	return nil
}

func (m memMovies) AddCopies(_ context.Context, id string, n int) error {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	mv := m.s.movies[id]
	mv.StockQuantity += n
	mv.TotalCopies += n
	mv.IsAvailable = true
	m.s.movies[id] = mv
	return nil
}

func (m memMovies) Delete(_ context.Context, id string) error {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	delete(m.s.movies, id)
	return nil
}

// ── customers ────────────────────────────────────────────────────────────────

type memCustomers struct{ s *memStore }

func (m memCustomers) Create(_ context.Context, c *entity.Customer) error {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	m.s.customers[c.ID] = *c
	return nil
}

func (m memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	c, ok := m.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m memCustomers) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	for _, c := range m.s.customers {
		if c.Email == email {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (m memCustomers) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	var out []*entity.Customer
	for _, c := range m.s.customers {
		if f.ActiveOnly && !c.IsActive {
			continue
		}
		found := c
		out = append(out, &found)
	}
	return out, nil
}

func (m memCustomers) Count(ctx context.Context, f repository.CustomerFilter) (int, error) {
	list, err := m.List(ctx, f)
	return len(list), err
}

func (m memCustomers) Update(_ context.Context, id string, p entity.CustomerPatch) (bool, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	c, ok := m.s.customers[id]
	if !ok {
		return false, nil
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	m.s.customers[id] = c
	return true, nil
}

func (m memCustomers) SetActive(_ context.Context, id string, active bool) error {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	c := m.s.customers[id]
	c.IsActive = active
	m.s.customers[id] = c
	return nil
}

// ── employees ────────────────────────────────────────────────────────────────

type memEmployees struct{ s *memStore }

func (m memEmployees) Create(_ context.Context, e *entity.Employee) error {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	m.s.employees[e.ID] = *e
	return nil
}

func (m memEmployees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	e, ok := m.s.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m memEmployees) GetByUsername(_ context.Context, username string) (*entity.Employee, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	for _, e := range m.s.employees {
		if e.Username == username {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (m memEmployees) UpdatePassword(_ context.Context, id, hash string) error {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	e, ok := m.s.employees[id]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	e.PasswordHash = hash
	m.s.employees[id] = e
	return nil
}

// ── rentals ──────────────────────────────────────────────────────────────────

type memRentals struct{ s *memStore }

func (m memRentals) Create(_ context.Context, r *entity.Rental) error {
	if m.s.failRentalCreate != nil {
		return m.s.failRentalCreate
	}
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	m.s.rentals[r.ID] = *r
	return nil
}

func (m memRentals) GetByID(_ context.Context, id string) (*entity.Rental, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	r, ok := m.s.rentals[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m memRentals) GetForUpdate(ctx context.Context, id string) (*entity.Rental, error) {
	return m.GetByID(ctx, id)
}

func (m memRentals) MarkReturned(_ context.Context, id string, returnDate time.Time, lateFee decimal.Decimal) error {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	r, ok := m.s.rentals[id]
	if !ok {
		return errors.New("rental inexistente")
	}
	d := returnDate
	r.ActualReturnDate = &d
	r.LateFee = lateFee
	r.Status = entity.RentalStatusReturned
	m.s.rentals[id] = r
	return nil
}

func (m memRentals) PromoteOverdue(_ context.Context, today time.Time) (int64, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	m.s.promoteCalls++
	var n int64
	for id, r := range m.s.rentals {
		if r.Status == entity.RentalStatusActive && r.DueDate.Before(today) {
			r.Status = entity.RentalStatusOverdue
			m.s.rentals[id] = r
			n++
		}
	}
	return n, nil
}

func (m memRentals) Search(_ context.Context, f repository.RentalFilter) ([]*entity.RentalView, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	return paginate(m.matching(f), f.Limit, f.Offset), nil
}

func (m memRentals) Count(_ context.Context, f repository.RentalFilter) (int, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	return len(m.matching(f)), nil
}

// matching aplica los filtros de Search; el llamador tiene dataMu.
func (m memRentals) matching(f repository.RentalFilter) []*entity.RentalView {
	var out []*entity.RentalView
	for _, r := range m.s.rentals {
		if f.CustomerID != "" && r.CustomerID != f.CustomerID {
			continue
		}
		if f.MovieID != "" && r.MovieID != f.MovieID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.From != nil && r.RentalDate.Before(*f.From) {
			continue
		}
		if f.To != nil && r.RentalDate.After(*f.To) {
			continue
		}
		c := m.s.customers[r.CustomerID]
		out = append(out, &entity.RentalView{
			Rental:       r,
			CustomerName: c.FullName(),
			MovieTitle:   m.s.movies[r.MovieID].Title,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RentalDate.Equal(out[j].RentalDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].RentalDate.After(out[j].RentalDate)
	})
	return out
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

func (m memRentals) ListOverdue(_ context.Context, today time.Time) ([]*entity.RentalView, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	var out []*entity.RentalView
	for _, r := range m.s.rentals {
		if r.IsOpen() && r.DueDate.Before(today) {
			out = append(out, &entity.RentalView{Rental: r, MovieTitle: m.s.movies[r.MovieID].Title})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (m memRentals) CountOpenByMovie(_ context.Context, movieID string) (int, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	n := 0
	for _, r := range m.s.rentals {
		if r.MovieID == movieID && r.IsOpen() {
			n++
		}
	}
	return n, nil
}

func (m memRentals) CountOpenByCustomer(_ context.Context, customerID string) (int, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	n := 0
	for _, r := range m.s.rentals {
		if r.CustomerID == customerID && r.IsOpen() {
			n++
		}
	}
	return n, nil
}

// ── returns ──────────────────────────────────────────────────────────────────

type memReturns struct{ s *memStore }

func (m memReturns) Create(_ context.Context, ret *entity.RentalReturn) error {
	if m.s.failReturnCreate != nil {
		return m.s.failReturnCreate
	}
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	if _, dup := m.s.returns[ret.RentalID]; dup {
		return domain.ErrDuplicate
	}
	m.s.returns[ret.RentalID] = *ret
	return nil
}

func (m memReturns) GetByRentalID(_ context.Context, rentalID string) (*entity.RentalReturn, error) {
	m.s.dataMu.Lock()
	defer m.s.dataMu.Unlock()
	ret, ok := m.s.returns[rentalID]
	if !ok {
		return nil, nil
	}
	return &ret, nil
}

// ── clock ────────────────────────────────────────────────────────────────────

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) advance(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, days)
}
