package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock/internal/domain"
	"github.com/jhoicas/control-stock/internal/domain/entity"
	"github.com/jhoicas/control-stock/internal/domain/repository"
	"github.com/jhoicas/control-stock/internal/infrastructure/memory"
)

// Estos tests fijan el contrato que el adaptador en memoria comparte con el
// de PostgreSQL: unicidad, integridad referencial y rollback del TxRunner.

func newProduct(id, name string, quantity int) *entity.Product {
	now := time.Now()
	return &entity.Product{ID: id, Name: name, Quantity: quantity, MinimumQuantity: 1, CreatedAt: now, UpdatedAt: now}
}

func TestProductRepo_NombreUnico(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	require.NoError(t, repo.Create(newProduct("p1", "Widget", 5)))
	err := repo.Create(newProduct("p2", "Widget", 1))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMovementRepo_ExigeProductoExistente(t *testing.T) {
	store := memory.NewStore()
	movements := memory.NewMovementRepository(store)

	err := movements.Create(&entity.Movement{
		ProductID: "no-existe",
		Type:      entity.MovementEntrada,
		Quantity:  1,
		Date:      time.Now(),
		Username:  "alice",
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestUserRepo_CreateIfAbsentNoSobreescribe(t *testing.T) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)

	inserted, err := users.CreateIfAbsent(&entity.User{ID: "u1", Username: "admin", PasswordHash: "hash-1", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = users.CreateIfAbsent(&entity.User{ID: "u2", Username: "admin", PasswordHash: "hash-2", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, inserted)

	u, err := users.FindByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", u.PasswordHash)
}

func TestTxRunner_RevierteTodoSiFallaLaUnidad(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	boom := errors.New("boom")
	err := runner.Run(context.Background(), func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		require.NoError(t, products.Create(newProduct("p1", "Widget", 5)))
		require.NoError(t, movements.Create(&entity.Movement{
			ProductID: "p1", Type: entity.MovementEntrada, Quantity: 5, Date: time.Now(), Username: "alice",
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Nada de la unidad quedó aplicado.
	products, err := memory.NewProductRepository(store).List()
	require.NoError(t, err)
	assert.Empty(t, products)
	history, err := memory.NewMovementRepository(store).ListHistory()
	require.NoError(t, err)
	assert.Empty(t, history)
}
