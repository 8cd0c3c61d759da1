package serviceorder

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/order"
)

// DraftUseCase sesiones de composición de órdenes en el servidor.
// Cada operación carga el Snapshot, reconstruye un Builder propio, lo muta y lo guarda.
type DraftUseCase struct {
	store  DraftStore
	commit *CommitUseCase
	query  *QueryUseCase

	// un mutex por borrador: serializa operaciones sobre la misma sesión en este proceso.
	// La entrada vive mientras haya operaciones en curso sobre ese id.
	locksMu sync.Mutex
	locks   map[string]*draftLock
}

type draftLock struct {
	sync.Mutex
	refs int
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(store DraftStore, commit *CommitUseCase, query *QueryUseCase) *DraftUseCase {
	return &DraftUseCase{store: store, commit: commit, query: query, locks: make(map[string]*draftLock)}
}

func (uc *DraftUseCase) lock(id string) func() {
	uc.locksMu.Lock()
	l, ok := uc.locks[id]
	if !ok {
		l = &draftLock{}
		uc.locks[id] = l
	}
	l.refs++
	uc.locksMu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		uc.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(uc.locks, id)
		}
		uc.locksMu.Unlock()
	}
}

func (uc *DraftUseCase) load(ctx context.Context, id string) (*order.Builder, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewValidationError("draft_id", "no es un UUID válido")
	}
	snap, err := uc.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, &domain.NotFoundError{Resource: "borrador", Key: id}
	}
	return order.Restore(*snap)
}

// Create abre un borrador vacío.
func (uc *DraftUseCase) Create(ctx context.Context) (*dto.DraftResponse, error) {
	id := uuid.NewString()
	b := order.NewBuilder()
	if err := uc.store.Save(ctx, id, b.Snapshot()); err != nil {
		return nil, err
	}
	return ToDraftResponse(id, b), nil
}

// Get devuelve el estado del borrador.
func (uc *DraftUseCase) Get(ctx context.Context, id string) (*dto.DraftResponse, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDraftResponse(id, b), nil
}

// mutate aplica fn sobre el borrador y lo guarda solo si fn no falla.
func (uc *DraftUseCase) mutate(ctx context.Context, id string, fn func(b *order.Builder) error) (*dto.DraftResponse, error) {
	defer uc.lock(id)()
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, id, b.Snapshot()); err != nil {
		return nil, err
	}
	return ToDraftResponse(id, b), nil
}

// AddItem agrega una línea al borrador.
func (uc *DraftUseCase) AddItem(ctx context.Context, id string, in dto.AddLineItemRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, id, func(b *order.Builder) error {
		_, err := b.AddLineItem(in.PartName, in.UnitPrice, in.Quantity)
		return err
	})
}

// RemoveItem quita la línea en la posición index.
func (uc *DraftUseCase) RemoveItem(ctx context.Context, id string, index int) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, id, func(b *order.Builder) error {
		return b.RemoveLineItem(index)
	})
}

// SetLabor fija la mano de obra.
func (uc *DraftUseCase) SetLabor(ctx context.Context, id string, in dto.SetLaborRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, id, func(b *order.Builder) error {
		return b.SetLaborCost(in.LaborCost)
	})
}

// Commit confirma el borrador. El borrador confirmado se conserva (estado committed)
// hasta su expiración, de modo que un segundo envío devuelve conflicto en lugar de duplicar la orden.
// Si la orden se creó pero el borrador no pudo guardarse, se registra el error, se intenta
// descartar el borrador y se devuelve igualmente la orden.
func (uc *DraftUseCase) Commit(ctx context.Context, id string, in dto.CommitDraftRequest) (*dto.OrderResponse, error) {
	defer uc.lock(id)()
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.State() == order.StateCommitted {
		return nil, order.ErrCommitted
	}
	so, err := uc.commit.Commit(ctx, b, in.ClientID, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, id, b.Snapshot()); err != nil {
		// la orden ya existe: un reintento sobre el borrador en composing la duplicaría
		uc.commit.log.Error().Err(err).
			Str("draft_id", id).
			Int64("order_id", so.ID).
			Msg("no se pudo marcar el borrador como confirmado; se descarta")
		if derr := uc.store.Delete(ctx, id); derr != nil {
			uc.commit.log.Error().Err(derr).Str("draft_id", id).Msg("no se pudo descartar el borrador confirmado")
		}
	}
	return uc.query.GetOrder(ctx, so.ID)
}

// Discard elimina el borrador. Idempotente.
func (uc *DraftUseCase) Discard(ctx context.Context, id string) error {
	defer uc.lock(id)()
	return uc.store.Delete(ctx, id)
}

// ToDraftResponse convierte el Builder a su DTO.
func ToDraftResponse(id string, b *order.Builder) *dto.DraftResponse {
	items := b.Items()
	resp := &dto.DraftResponse{
		ID:            id,
		State:         string(b.State()),
		Items:         make([]dto.DraftLineResponse, 0, len(items)),
		LaborCost:     b.LaborCost(),
		LaborSet:      b.LaborSet(),
		PartsSubtotal: b.PartsSubtotal(),
		Total:         b.Total(),
	}
	for i, it := range items {
		resp.Items = append(resp.Items, dto.DraftLineResponse{
			Index:     i,
			PartName:  it.PartName,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal,
		})
	}
	return resp
}
