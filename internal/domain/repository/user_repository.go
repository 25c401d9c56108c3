package repository

import "github.com/jhoicas/control-stock/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste un usuario nuevo; domain.ErrDuplicate si el username ya existe.
	Create(user *entity.User) error
	// CreateIfAbsent inserta solo si el username no existe (semántica INSERT OR IGNORE).
	// Nunca sobreescribe una cuenta existente. Devuelve true si insertó.
	CreateIfAbsent(user *entity.User) (bool, error)
	// FindByUsername devuelve (nil, nil) si el usuario no existe.
	FindByUsername(username string) (*entity.User, error)
}
