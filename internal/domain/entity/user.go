package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleMecanico = "mecanico"
)

// User representa un operador del taller que usa la API.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, mecanico
	CreatedAt    time.Time
}

// ValidRole indica si role es uno de los roles admitidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMecanico
}
