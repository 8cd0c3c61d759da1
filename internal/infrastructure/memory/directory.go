package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.VehicleRepository = (*VehicleRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// ClientRepo clientes en memoria.
type ClientRepo struct {
	a access
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.a.write(func(st *state) error {
		st.seq.client++
		c.ID = st.seq.client
		c.CreatedAt = r.a.store.now()
		st.clients[c.ID] = *c
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	var out *entity.Client
	err := r.a.read(func(st *state) error {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) FindByName(_ context.Context, name string) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.a.read(func(st *state) error {
		for _, c := range st.clients {
			if c.Name == name {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *ClientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	var all []*entity.Client
	err := r.a.read(func(st *state) error {
		for _, c := range st.clients {
			c := c
			all = append(all, &c)
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	return paginate(all, limit, offset), err
}

// VehicleRepo vehículos en memoria; la placa es única.
type VehicleRepo struct {
	a access
}

func (r *VehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.clients[v.ClientID]; !ok {
			return &domain.NotFoundError{Resource: "cliente", Key: v.ClientID}
		}
		for _, other := range st.vehicles {
			if other.Plate == v.Plate {
				return &domain.IntegrityError{Constraint: "vehicles_plate_key"}
			}
		}
		st.seq.vehicle++
		v.ID = st.seq.vehicle
		v.CreatedAt = r.a.store.now()
		st.vehicles[v.ID] = *v
		return nil
	})
}

func (r *VehicleRepo) GetByID(_ context.Context, id int64) (*entity.Vehicle, error) {
	var out *entity.Vehicle
	err := r.a.read(func(st *state) error {
		if v, ok := st.vehicles[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *VehicleRepo) ListByClient(_ context.Context, clientID int64) ([]*entity.Vehicle, error) {
	var out []*entity.Vehicle
	err := r.a.read(func(st *state) error {
		for _, v := range st.vehicles {
			if v.ClientID == clientID {
				v := v
				out = append(out, &v)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, err
}

func (r *VehicleRepo) UpdateOwner(_ context.Context, vehicleID, clientID int64) error {
	return r.a.write(func(st *state) error {
		v, ok := st.vehicles[vehicleID]
		if !ok {
			return &domain.NotFoundError{Resource: "vehículo", Key: vehicleID}
		}
		if _, ok := st.clients[clientID]; !ok {
			return &domain.NotFoundError{Resource: "cliente", Key: clientID}
		}
		v.ClientID = clientID
		st.vehicles[vehicleID] = v
		return nil
	})
}

// UserRepo operadores en memoria; el username es único.
type UserRepo struct {
	a access
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.write(func(st *state) error {
		for _, other := range st.users {
			if other.Username == u.Username {
				return &domain.IntegrityError{Constraint: "users_username_key"}
			}
		}
		st.seq.user++
		u.ID = st.seq.user
		u.CreatedAt = r.a.store.now()
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
