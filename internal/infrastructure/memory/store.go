// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Cumple el mismo contrato que el adaptador PostgreSQL (unicidad,
// integridad referencial, orden de listados) y permite probar los casos de
// uso sin base de datos.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/control-stock/internal/domain/entity"
)

// Store guarda los tres conjuntos de entidades bajo un único mutex
// (el modelo de uso es mono-usuario; no hace falta más granularidad).
type Store struct {
	mu        sync.Mutex
	users     map[string]*entity.User    // clave: username
	products  map[string]*entity.Product // clave: id
	movements []*entity.Movement
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		products: make(map[string]*entity.Product),
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	return &c
}

// snapshot copia el estado completo para poder revertirlo (rollback del TxRunner).
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := NewStore()
	for k, u := range s.users {
		snap.users[k] = cloneUser(u)
	}
	for k, p := range s.products {
		snap.products[k] = cloneProduct(p)
	}
	snap.movements = make([]*entity.Movement, len(s.movements))
	for i, m := range s.movements {
		snap.movements[i] = cloneMovement(m)
	}
	return snap
}

// restore reemplaza el estado por el del snapshot.
func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.products = snap.products
	s.movements = snap.movements
}

// findProductByName busca por nombre. Llamar con el mutex tomado.
func (s *Store) findProductByName(name string) *entity.Product {
	for _, p := range s.products {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// sortedProducts devuelve copias ordenadas por nombre. Llamar con el mutex tomado.
func (s *Store) sortedProducts() []*entity.Product {
	list := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, cloneProduct(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
