package inventory

import (
	"context"

	"github.com/jhoicas/control-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las operaciones
// multi-escritura: alta de producto + entrada inicial, borrado en cascada,
// actualización de stock + registro de movimiento.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
