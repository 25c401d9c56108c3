package memory

import (
	"context"

	"github.com/jhoicas/control-stock/internal/application/inventory"
	"github.com/jhoicas/control-stock/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner da semántica transaccional al Store en memoria: toma un snapshot
// del estado antes de ejecutar fn y lo restaura si fn falla, de modo que una
// unidad multi-escritura se aplica completa o no se aplica.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el Store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos sobre el mismo Store; revierte todo si fn devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(NewProductRepository(r.store), NewMovementRepository(r.store))
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
