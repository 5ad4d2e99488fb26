package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/domain"
	"github.com/jhoicas/videoclub-api/internal/domain/entity"
	"github.com/jhoicas/videoclub-api/internal/domain/repository"
	"github.com/jhoicas/videoclub-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación de empleados: alta y login.
type AuthUseCase struct {
	employeeRepo repository.EmployeeRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employeeRepo repository.EmployeeRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{employeeRepo: employeeRepo, jwtCfg: jwtCfg}
}

// MinPasswordLength largo mínimo de una clave de empleado.
const MinPasswordLength = 8

// RegisterEmployee crea un empleado con password bcrypt. ErrDuplicate si el username ya existe.
func (uc *AuthUseCase) RegisterEmployee(ctx context.Context, in dto.RegisterEmployeeRequest) (*dto.EmployeeResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || len(in.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleStaff
	case entity.RoleAdmin, entity.RoleManager, entity.RoleStaff:
	default:
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.employeeRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	emp := &entity.Employee{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := uc.employeeRepo.Create(ctx, emp); err != nil {
		return nil, err
	}
	return toEmployeeResponse(emp), nil
}

// Login verifica username/password, genera JWT y retorna token + empleado.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	emp, err := uc.employeeRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !emp.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, emp.ID, emp.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Employee: *toEmployeeResponse(emp),
	}, nil
}

// Me devuelve el empleado autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, employeeID string) (*dto.EmployeeResponse, error) {
	emp, err := uc.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return toEmployeeResponse(emp), nil
}

// ChangePassword verifica la clave actual y guarda el hash de la nueva.
// ErrUnauthorized si la clave actual no coincide.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, employeeID, oldPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return domain.ErrInvalidInput
	}
	emp, err := uc.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return domain.ErrEmployeeNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.employeeRepo.UpdatePassword(ctx, employeeID, string(hash))
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:        e.ID,
		Username:  e.Username,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Role:      e.Role,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
}
