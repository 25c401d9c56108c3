package repository

import "github.com/jhoicas/control-stock/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create persiste un producto nuevo; domain.ErrDuplicate si el nombre ya existe.
	Create(product *entity.Product) error
	// GetByID devuelve (nil, nil) si el producto no existe.
	GetByID(id string) (*entity.Product, error)
	// GetByName devuelve (nil, nil) si no hay producto con ese nombre.
	GetByName(name string) (*entity.Product, error)
	// Update sobreescribe nombre, cantidad y mínimo; domain.ErrNotFound si el id
	// no existe y domain.ErrDuplicate si el nuevo nombre choca con otro producto.
	Update(product *entity.Product) error
	// UpdateQuantity fija solo el stock actual (usado al procesar movimientos).
	UpdateQuantity(id string, quantity int) error
	// Delete elimina el producto; domain.ErrNotFound si no existe.
	Delete(id string) error
	// List devuelve todos los productos ordenados por nombre.
	List() ([]*entity.Product, error)
	// GetForUpdate bloquea la fila para update dentro de una transacción
	// (SELECT FOR UPDATE). Fuera de transacción equivale a GetByID.
	GetForUpdate(id string) (*entity.Product, error)
}
