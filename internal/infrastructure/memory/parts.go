package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo repuestos en memoria.
type PartRepo struct {
	a access
}

func (r *PartRepo) UpsertOnSupply(_ context.Context, part *entity.Part, qty int) (bool, error) {
	var created bool
	err := r.a.write(func(st *state) error {
		now := r.a.store.now()
		for id, p := range st.parts {
			if p.Name == part.Name && p.Reference == part.Reference {
				if p.StockQuantity+qty < 0 {
					return &domain.IntegrityError{Constraint: "parts_stock_quantity_check"}
				}
				p.StockQuantity += qty
				p.UpdatedAt = now
				st.parts[id] = p
				*part = p
				return nil
			}
		}
		if qty < 0 {
			return &domain.IntegrityError{Constraint: "parts_stock_quantity_check"}
		}
		st.seq.part++
		p := *part
		p.ID = st.seq.part
		p.StockQuantity = qty
		p.CreatedAt = now
		p.UpdatedAt = now
		st.parts[p.ID] = p
		*part = p
		created = true
		return nil
	})
	return created, err
}

func (r *PartRepo) GetByID(_ context.Context, id int64) (*entity.Part, error) {
	var out *entity.Part
	err := r.a.read(func(st *state) error {
		if p, ok := st.parts[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate: dentro de una tx el lock de escritura ya está tomado.
func (r *PartRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Part, error) {
	return r.GetByID(ctx, id)
}

func (r *PartRepo) GetByIdentity(_ context.Context, name, reference string) (*entity.Part, error) {
	var out *entity.Part
	err := r.a.read(func(st *state) error {
		for _, p := range st.parts {
			if p.Name == name && p.Reference == reference {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *PartRepo) FindByName(_ context.Context, name string) ([]*entity.Part, error) {
	var out []*entity.Part
	err := r.a.read(func(st *state) error {
		for _, p := range st.parts {
			if p.Name == name {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *PartRepo) List(_ context.Context, limit, offset int) ([]*entity.Part, error) {
	var all []*entity.Part
	err := r.a.read(func(st *state) error {
		for _, p := range st.parts {
			p := p
			all = append(all, &p)
		}
		return nil
	})
	sortParts(all)
	return paginate(all, limit, offset), err
}

func sortParts(ps []*entity.Part) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Name != ps[j].Name {
			return ps[i].Name < ps[j].Name
		}
		return ps[i].Reference < ps[j].Reference
	})
}

func (r *PartRepo) AdjustStock(_ context.Context, id int64, delta int) (int, error) {
	var qty int
	err := r.a.write(func(st *state) error {
		p, ok := st.parts[id]
		if !ok {
			return &domain.NotFoundError{Resource: "repuesto", Key: id}
		}
		if p.StockQuantity+delta < 0 {
			return &domain.IntegrityError{Constraint: "parts_stock_quantity_check"}
		}
		p.StockQuantity += delta
		p.UpdatedAt = r.a.store.now()
		st.parts[id] = p
		qty = p.StockQuantity
		return nil
	})
	return qty, err
}
