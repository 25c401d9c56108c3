package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/control-stock/internal/domain"
	"github.com/jhoicas/control-stock/internal/domain/entity"
	"github.com/jhoicas/control-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. El FK exige que el producto exista.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, type, quantity, date, username)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Date, movement.Username,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConstraint
		}
		return fmt.Errorf("insert movement: %w", mapError(err))
	}
	return nil
}

// DeleteByProduct elimina todos los movimientos del producto.
func (r *MovementRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM movements WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete movements by product: %w", mapError(err))
	}
	return nil
}

// ListHistory devuelve el historial completo con nombre de producto, más reciente primero.
func (r *MovementRepo) ListHistory() ([]*entity.MovementRecord, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.date, m.username, p.name
		FROM movements m
		JOIN products p ON m.product_id = p.id
		ORDER BY m.date DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list movement history: %w", mapError(err))
	}
	defer rows.Close()
	var list []*entity.MovementRecord
	for rows.Next() {
		var rec entity.MovementRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Type, &rec.Quantity,
			&rec.Date, &rec.Username, &rec.ProductName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
