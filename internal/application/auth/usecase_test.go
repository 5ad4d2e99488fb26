package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/pkg/jwt"
)

type fakeEmployees struct {
	byID map[string]*entity.Employee
}

func newFakeEmployees() *fakeEmployees {
	return &fakeEmployees{byID: map[string]*entity.Employee{}}
}

func (f *fakeEmployees) Create(_ context.Context, e *entity.Employee) error {
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEmployees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	return f.byID[id], nil
}

func (f *fakeEmployees) GetByUsername(_ context.Context, username string) (*entity.Employee, error) {
	for _, e := range f.byID {
		if e.Username == username {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployees) UpdatePassword(_ context.Context, id, hash string) error {
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	e.PasswordHash = hash
	return nil
}

var jwtCfg = JWTConfig{Secret: "secreto", ExpMinutes: 10, Issuer: "videoclub-api"}

func registerMaria(t *testing.T, uc *AuthUseCase) *dto.EmployeeResponse {
	t.Helper()
	emp, err := uc.RegisterEmployee(context.Background(), dto.RegisterEmployeeRequest{
		Username:  "maria",
		Password:  "clave-segura",
		FirstName: "María",
		LastName:  "Gómez",
		Email:     "Maria@Videoclub.test",
	})
	require.NoError(t, err)
	return emp
}

func TestRegisterEmployee_RolPorDefectoStaff(t *testing.T) {
	repo := newFakeEmployees()
	uc := NewAuthUseCase(repo, jwtCfg)

	emp := registerMaria(t, uc)

	assert.Equal(t, entity.RoleStaff, emp.Role)
	assert.Equal(t, "maria@videoclub.test", emp.Email)
	assert.NotEqual(t, "clave-segura", repo.byID[emp.ID].PasswordHash)
}

func TestRegisterEmployee_UsernameDuplicado(t *testing.T) {
	uc := NewAuthUseCase(newFakeEmployees(), jwtCfg)
	registerMaria(t, uc)

	_, err := uc.RegisterEmployee(context.Background(), dto.RegisterEmployeeRequest{Username: "maria", Password: "otra-clave-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterEmployee_RolInvalido(t *testing.T) {
	uc := NewAuthUseCase(newFakeEmployees(), jwtCfg)

	_, err := uc.RegisterEmployee(context.Background(), dto.RegisterEmployeeRequest{Username: "pepe", Password: "clave-segura", Role: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenConEmpleadoYRol(t *testing.T) {
	uc := NewAuthUseCase(newFakeEmployees(), jwtCfg)
	emp := registerMaria(t, uc)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave-segura"})
	require.NoError(t, err)

	id, role, err := jwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, id)
	assert.Equal(t, entity.RoleStaff, role)
	assert.Equal(t, "maria", out.Employee.Username)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := NewAuthUseCase(newFakeEmployees(), jwtCfg)
	registerMaria(t, uc)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmpleadoInactivo(t *testing.T) {
	repo := newFakeEmployees()
	uc := NewAuthUseCase(repo, jwtCfg)
	emp := registerMaria(t, uc)
	repo.byID[emp.ID].IsActive = false

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe_NoExiste(t *testing.T) {
	uc := NewAuthUseCase(newFakeEmployees(), jwtCfg)

	_, err := uc.Me(context.Background(), "emp-x")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestChangePassword_ReemplazaHash(t *testing.T) {
	repo := newFakeEmployees()
	uc := NewAuthUseCase(repo, jwtCfg)
	emp := registerMaria(t, uc)
	before := repo.byID[emp.ID].PasswordHash

	require.NoError(t, uc.ChangePassword(context.Background(), emp.ID, "clave-segura", "clave-nueva-2"))

	assert.NotEqual(t, before, repo.byID[emp.ID].PasswordHash)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave-nueva-2"})
	assert.NoError(t, err)
}

func TestChangePassword_Errores(t *testing.T) {
	repo := newFakeEmployees()
	uc := NewAuthUseCase(repo, jwtCfg)
	emp := registerMaria(t, uc)
	before := repo.byID[emp.ID].PasswordHash

	err := uc.ChangePassword(context.Background(), emp.ID, "equivocada", "clave-nueva-2")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.ChangePassword(context.Background(), emp.ID, "clave-segura", "corta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.ChangePassword(context.Background(), "emp-x", "clave-segura", "clave-nueva-2")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	assert.Equal(t, before, repo.byID[emp.ID].PasswordHash)
}
