package entity

import "time"

// Roles válidos para Employee.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Employee representa un empleado que procesa alquileres y devoluciones.
type Employee struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Email        string
	Role         string // admin, manager, staff
	IsActive     bool
	CreatedAt    time.Time
}

// FullName nombre para mostrar.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
