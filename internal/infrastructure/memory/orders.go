package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes de servicio en memoria.
type OrderRepo struct {
	a access
}

func (r *OrderRepo) Create(_ context.Context, so *entity.ServiceOrder) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.clients[so.ClientID]; !ok {
			return &domain.IntegrityError{Constraint: "service_orders_client_id_fkey"}
		}
		if _, ok := st.vehicles[so.VehicleID]; !ok {
			return &domain.IntegrityError{Constraint: "service_orders_vehicle_id_fkey"}
		}
		if so.LaborCost.IsNegative() {
			return &domain.IntegrityError{Constraint: "service_orders_labor_cost_check"}
		}
		st.seq.order++
		so.ID = st.seq.order
		so.CreatedAt = r.a.store.now()
		stored := *so
		stored.Lines = nil
		st.orders[so.ID] = stored
		return nil
	})
}

func (r *OrderRepo) CreateLineItem(_ context.Context, line *entity.OrderLineItem) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.orders[line.OrderID]; !ok {
			return &domain.IntegrityError{Constraint: "order_line_items_order_id_fkey"}
		}
		if _, ok := st.parts[line.PartID]; !ok {
			return &domain.IntegrityError{Constraint: "order_line_items_part_id_fkey"}
		}
		if line.Quantity <= 0 {
			return &domain.IntegrityError{Constraint: "order_line_items_quantity_check"}
		}
		st.seq.line++
		line.ID = st.seq.line
		st.lines = append(st.lines, *line)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id int64) (*entity.ServiceOrder, error) {
	var out *entity.ServiceOrder
	err := r.a.read(func(st *state) error {
		if so, ok := st.orders[id]; ok {
			out = &so
		}
		return nil
	})
	return out, err
}

// GetLineItems con nombre y referencia actuales del repuesto, como el JOIN de PostgreSQL.
func (r *OrderRepo) GetLineItems(_ context.Context, orderID int64) ([]entity.OrderLineItem, error) {
	var out []entity.OrderLineItem
	err := r.a.read(func(st *state) error {
		for _, l := range st.lines {
			if l.OrderID != orderID {
				continue
			}
			if p, ok := st.parts[l.PartID]; ok {
				l.PartName = p.Name
				l.Reference = p.Reference
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) List(_ context.Context, limit, offset int) ([]*entity.ServiceOrder, error) {
	var all []*entity.ServiceOrder
	err := r.a.read(func(st *state) error {
		for _, so := range st.orders {
			so := so
			all = append(all, &so)
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
