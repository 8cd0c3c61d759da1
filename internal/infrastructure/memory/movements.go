package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria (solo inserción).
type MovementRepo struct {
	a access
}

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.a.write(func(st *state) error {
		if !entity.ValidDirection(m.Direction) {
			return &domain.IntegrityError{Constraint: "stock_movements_direction_check"}
		}
		if m.Quantity <= 0 {
			return &domain.IntegrityError{Constraint: "stock_movements_quantity_check"}
		}
		if _, ok := st.parts[m.PartID]; !ok {
			return &domain.NotFoundError{Resource: "repuesto u orden", Key: m.PartID}
		}
		if m.OrderID != nil {
			if _, ok := st.orders[*m.OrderID]; !ok {
				return &domain.NotFoundError{Resource: "repuesto u orden", Key: *m.OrderID}
			}
		}
		st.seq.movement++
		m.ID = st.seq.movement
		if m.CreatedAt.IsZero() {
			m.CreatedAt = r.a.store.now()
		}
		st.movements = append(st.movements, cloneMovement(*m))
		return nil
	})
}

func (r *MovementRepo) ListByPart(_ context.Context, partID int64, limit, offset int) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	err := r.a.read(func(st *state) error {
		for _, m := range st.movements {
			if m.PartID == partID {
				c := cloneMovement(m)
				all = append(all, &c)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return paginate(all, limit, offset), err
}

func (r *MovementRepo) ListByOrder(_ context.Context, orderID int64) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.a.read(func(st *state) error {
		for _, m := range st.movements {
			if m.OrderID != nil && *m.OrderID == orderID {
				c := cloneMovement(m)
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) Summary(_ context.Context) ([]entity.StockSummary, error) {
	var out []entity.StockSummary
	err := r.a.read(func(st *state) error {
		entries := make(map[int64]int64)
		exits := make(map[int64]int64)
		for _, m := range st.movements {
			if m.Direction == entity.MovementEntry {
				entries[m.PartID] += int64(m.Quantity)
			} else {
				exits[m.PartID] += int64(m.Quantity)
			}
		}
		parts := make([]*entity.Part, 0, len(st.parts))
		for _, p := range st.parts {
			p := p
			parts = append(parts, &p)
		}
		sortParts(parts)
		for _, p := range parts {
			out = append(out, entity.StockSummary{
				PartID:        p.ID,
				PartName:      p.Name,
				Reference:     p.Reference,
				TotalEntries:  entries[p.ID],
				TotalExits:    exits[p.ID],
				Balance:       entries[p.ID] - exits[p.ID],
				StockQuantity: int64(p.StockQuantity),
			})
		}
		return nil
	})
	return out, err
}
