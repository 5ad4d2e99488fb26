package entity

import "time"

// Customer representa un cliente del videoclub. Solo los activos pueden alquilar.
type Customer struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Address        string
	DateRegistered time.Time
	IsActive       bool
	UpdatedAt      time.Time
}

// FullName nombre para mostrar.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
