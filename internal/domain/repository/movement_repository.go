package repository

import "github.com/jhoicas/control-stock/internal/domain/entity"

// MovementRepository define el puerto de persistencia para movimientos (DIP).
// Los movimientos son inmutables: no hay Update ni Delete individual.
type MovementRepository interface {
	// Create persiste un movimiento; domain.ErrConstraint si el producto referido no existe.
	Create(movement *entity.Movement) error
	// DeleteByProduct elimina todos los movimientos del producto (cascada del borrado).
	DeleteByProduct(productID string) error
	// ListHistory devuelve el historial completo con nombre de producto,
	// ordenado por fecha descendente (más reciente primero).
	ListHistory() ([]*entity.MovementRecord, error)
}
