package memory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/jhoicas/control-stock/internal/domain"
	"github.com/jhoicas/control-stock/internal/domain/entity"
	"github.com/jhoicas/control-stock/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
)

// UserRepo adaptador en memoria del puerto UserRepository.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador sobre el Store dado.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create persiste un usuario; domain.ErrDuplicate si el username ya existe.
func (r *UserRepo) Create(user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.Username]; ok {
		return domain.ErrDuplicate
	}
	r.store.users[user.Username] = cloneUser(user)
	return nil
}

// CreateIfAbsent inserta solo si el username no existe. Nunca sobreescribe.
func (r *UserRepo) CreateIfAbsent(user *entity.User) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.Username]; ok {
		return false, nil
	}
	r.store.users[user.Username] = cloneUser(user)
	return true, nil
}

// FindByUsername devuelve (nil, nil) si el usuario no existe.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[username]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// ProductRepo adaptador en memoria del puerto ProductRepository.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador sobre el Store dado.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create persiste un producto; domain.ErrDuplicate si el nombre ya existe.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.findProductByName(product.Name) != nil {
		return domain.ErrDuplicate
	}
	if _, ok := r.store.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

// GetByID devuelve (nil, nil) si el producto no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetByName devuelve (nil, nil) si no hay producto con ese nombre.
func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p := r.store.findProductByName(name)
	if p == nil {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetForUpdate equivale a GetByID: el Store entero se serializa con un mutex.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

// Update sobreescribe nombre, cantidad y mínimo.
func (r *ProductRepo) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	if other := r.store.findProductByName(product.Name); other != nil && other.ID != product.ID {
		return domain.ErrDuplicate
	}
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

// UpdateQuantity fija solo el stock actual.
func (r *ProductRepo) UpdateQuantity(id string, quantity int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

// Delete elimina el producto.
func (r *ProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}

// List devuelve todos los productos ordenados por nombre.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.sortedProducts(), nil
}

// MovementRepo adaptador en memoria del puerto MovementRepository.
type MovementRepo struct {
	store *Store
}

// NewMovementRepository construye el adaptador sobre el Store dado.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

// Create persiste un movimiento; domain.ErrConstraint si el producto no existe.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[movement.ProductID]; !ok {
		return domain.ErrConstraint
	}
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.store.movements = append(r.store.movements, cloneMovement(movement))
	return nil
}

// DeleteByProduct elimina todos los movimientos del producto.
func (r *MovementRepo) DeleteByProduct(productID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.movements[:0]
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.store.movements = kept
	return nil
}

// ListHistory devuelve el historial con nombre de producto, más reciente primero.
func (r *MovementRepo) ListHistory() ([]*entity.MovementRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list := make([]*entity.MovementRecord, 0, len(r.store.movements))
	// Se recorre de atrás hacia adelante para que, a igual fecha, el más
	// recientemente insertado quede primero (como el ORDER BY date DESC).
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		m := r.store.movements[i]
		p, ok := r.store.products[m.ProductID]
		if !ok {
			continue // sin producto no hay fila: el join interno la descarta
		}
		list = append(list, &entity.MovementRecord{
			Movement:    *cloneMovement(m),
			ProductName: p.Name,
		})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}
