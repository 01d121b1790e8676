package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperario   = "operario"
)

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	Name         string
	PasswordHash string
	Role         string // admin | supervisor | operario
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
