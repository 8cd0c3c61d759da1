package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/order"
)

var _ serviceorder.DraftStore = (*DraftStore)(nil)

type draftEntry struct {
	snap    order.Snapshot
	expires time.Time
}

// DraftStore borradores de orden en memoria con vencimiento.
type DraftStore struct {
	mu    sync.Mutex
	items map[string]draftEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewDraftStore crea el store; ttl <= 0 = sin vencimiento.
func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{items: make(map[string]draftEntry), ttl: ttl, now: time.Now}
}

func copySnapshot(s order.Snapshot) order.Snapshot {
	s.Items = append([]order.LineItem(nil), s.Items...)
	return s
}

func (d *DraftStore) Save(_ context.Context, id string, snap order.Snapshot) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var exp time.Time
	if d.ttl > 0 {
		exp = d.now().Add(d.ttl)
	}
	d.items[id] = draftEntry{snap: copySnapshot(snap), expires: exp}
	return nil
}

func (d *DraftStore) Load(_ context.Context, id string) (*order.Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.items[id]
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && d.now().After(e.expires) {
		delete(d.items, id)
		return nil, nil
	}
	s := copySnapshot(e.snap)
	return &s, nil
}

func (d *DraftStore) Delete(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.items, id)
	return nil
}

// Purge elimina los borradores vencidos; devuelve cuántos.
func (d *DraftStore) Purge() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	now := d.now()
	for id, e := range d.items {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(d.items, id)
			n++
		}
	}
	return n
}
