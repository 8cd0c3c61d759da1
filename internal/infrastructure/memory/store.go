// Package memory implementa los puertos de persistencia en memoria: un único escritor
// a la vez, lectores concurrentes y rollback por copia del estado. Sirve para desarrollo
// (STORAGE_DRIVER=memory) y para las pruebas de los casos de uso.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ serviceorder.TxRunner = (*Store)(nil)

type sequences struct {
	part, movement, order, line, client, vehicle, user int64
}

type state struct {
	parts     map[int64]entity.Part
	movements []entity.StockMovement
	orders    map[int64]entity.ServiceOrder
	lines     []entity.OrderLineItem
	clients   map[int64]entity.Client
	vehicles  map[int64]entity.Vehicle
	users     map[int64]entity.User
	seq       sequences
}

func newState() state {
	return state{
		parts:    map[int64]entity.Part{},
		orders:   map[int64]entity.ServiceOrder{},
		clients:  map[int64]entity.Client{},
		vehicles: map[int64]entity.Vehicle{},
		users:    map[int64]entity.User{},
	}
}

// clone copia profunda; las entidades guardadas no comparten punteros con el llamador.
func (s state) clone() state {
	c := newState()
	for k, v := range s.parts {
		c.parts[k] = v
	}
	c.movements = make([]entity.StockMovement, len(s.movements))
	for i, m := range s.movements {
		c.movements[i] = cloneMovement(m)
	}
	for k, v := range s.orders {
		v.Lines = nil
		c.orders[k] = v
	}
	c.lines = append([]entity.OrderLineItem(nil), s.lines...)
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.vehicles {
		c.vehicles[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	c.seq = s.seq
	return c
}

func cloneMovement(m entity.StockMovement) entity.StockMovement {
	if m.OrderID != nil {
		id := *m.OrderID
		m.OrderID = &id
	}
	return m
}

// Store almacenamiento en memoria.
type Store struct {
	mu    sync.RWMutex
	state state
	now   func() time.Time
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{state: newState(), now: time.Now}
}

// WithClock fija el reloj (pruebas).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// access decide sobre qué estado opera un repo: el del Store (autocommit) o el de una tx.
type access struct {
	store *Store
	tx    *state
}

func (a access) read(fn func(st *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(&a.store.state)
}

func (a access) write(fn func(st *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	next := a.store.state.clone()
	if err := fn(&next); err != nil {
		return err
	}
	a.store.state = next
	return nil
}

func (s *Store) auto() access { return access{store: s} }

// inTx toma el lock de escritura, ejecuta fn sobre una copia y la publica solo si fn no falla.
func (s *Store) inTx(ctx context.Context, fn func(a access) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.state.clone()
	if err := fn(access{store: s, tx: &tx}); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return s.inTx(ctx, func(a access) error {
		return fn(&PartRepo{a: a}, &MovementRepo{a: a})
	})
}

// RunOrder implementa serviceorder.TxRunner.
func (s *Store) RunOrder(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.ServiceOrderRepository,
) error) error {
	return s.inTx(ctx, func(a access) error {
		return fn(&PartRepo{a: a}, &MovementRepo{a: a}, &OrderRepo{a: a})
	})
}

// Repos fuera de transacción (cada operación es atómica por sí misma).
func (s *Store) Parts() *PartRepo         { return &PartRepo{a: s.auto()} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{a: s.auto()} }
func (s *Store) Orders() *OrderRepo       { return &OrderRepo{a: s.auto()} }
func (s *Store) Clients() *ClientRepo     { return &ClientRepo{a: s.auto()} }
func (s *Store) Vehicles() *VehicleRepo   { return &VehicleRepo{a: s.auto()} }
func (s *Store) Users() *UserRepo         { return &UserRepo{a: s.auto()} }

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
