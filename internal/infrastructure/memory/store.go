// Package memory implementa los repositorios en memoria. Se usan en desarrollo cuando
// PostgreSQL no está disponible (datos de prueba) y en los tests de casos de uso y handlers.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/supermall-api/internal/application/orders"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa transacciones y las escrituras fuera de ellas

	users      map[string]*entity.User
	categories map[string]*entity.Category
	vendors    map[string]*entity.Vendor
	products   map[string]*entity.Product
	movements  []*entity.StockMovement
	orders     map[string]*entity.Order
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]*entity.User),
		categories: make(map[string]*entity.Category),
		vendors:    make(map[string]*entity.Vendor),
		products:   make(map[string]*entity.Product),
		orders:     make(map[string]*entity.Order),
	}
}

type snapshot struct {
	users      map[string]*entity.User
	categories map[string]*entity.Category
	vendors    map[string]*entity.Vendor
	products   map[string]*entity.Product
	movements  []*entity.StockMovement
	orders     map[string]*entity.Order
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		users:      make(map[string]*entity.User, len(s.users)),
		categories: make(map[string]*entity.Category, len(s.categories)),
		vendors:    make(map[string]*entity.Vendor, len(s.vendors)),
		products:   make(map[string]*entity.Product, len(s.products)),
		movements:  make([]*entity.StockMovement, len(s.movements)),
		orders:     make(map[string]*entity.Order, len(s.orders)),
	}
	for k, v := range s.users {
		snap.users[k] = copyUser(v)
	}
	for k, v := range s.categories {
		c := *v
		snap.categories[k] = &c
	}
	for k, v := range s.vendors {
		vv := *v
		snap.vendors[k] = &vv
	}
	for k, v := range s.products {
		snap.products[k] = copyProduct(v)
	}
	copy(snap.movements, s.movements)
	for k, v := range s.orders {
		snap.orders[k] = copyOrder(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.categories = snap.categories
	s.vendors = snap.vendors
	s.products = snap.products
	s.movements = snap.movements
	s.orders = snap.orders
}

// lockWrite toma el lock de escritura. Fuera de una transacción también espera a que
// termine la que esté en curso, así un rollback no pisa escrituras ajenas.
func (s *Store) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// TxRunner emula una transacción: toma una foto del almacén y la restaura si fn falla.
type TxRunner struct {
	store *Store
}

var _ orders.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunOrder ejecuta fn con los repos de pedido, producto y movimientos.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := r.store.snapshot()
	if err := fn(
		&OrderRepository{s: r.store, inTx: true},
		&ProductRepository{s: r.store, inTx: true},
		&StockMovementRepository{s: r.store, inTx: true},
	); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Images = append([]string(nil), p.Images...)
	if p.CompareAtPrice != nil {
		v := *p.CompareAtPrice
		c.CompareAtPrice = &v
	}
	return &c
}

func copyOrder(o *entity.Order) *entity.Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return &c
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
