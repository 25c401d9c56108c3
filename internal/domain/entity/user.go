package entity

import "time"

// Perfiles válidos para User.
const (
	RoleAdmin   = "Administrador"
	RoleRegular = "Comum"
)

// ValidRole indica si el perfil es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleRegular
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // Administrador, Comum
	CreatedAt    time.Time
}
