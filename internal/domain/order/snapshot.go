package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain"
)

// Snapshot forma serializable del Builder (stores de borradores: memoria o Redis).
type Snapshot struct {
	State     State           `json:"state"`
	Items     []LineItem      `json:"items"`
	LaborCost decimal.Decimal `json:"labor_cost"`
	LaborSet  bool            `json:"labor_set"`
	OrderID   int64           `json:"order_id,omitempty"`
}

// Snapshot devuelve una copia independiente del estado.
func (b *Builder) Snapshot() Snapshot {
	return Snapshot{
		State:     b.state,
		Items:     b.Items(),
		LaborCost: b.laborCost,
		LaborSet:  b.laborSet,
		OrderID:   b.orderID,
	}
}

// Restore reconstruye un Builder desde un Snapshot, revalidando cada línea
// y recalculando los totales (nunca se confía en totales guardados).
func Restore(s Snapshot) (*Builder, error) {
	b := NewBuilder()
	for i, it := range s.Items {
		item, err := NewLineItem(it.PartName, it.UnitPrice, it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("restaurar línea %d: %w", i, err)
		}
		b.items = append(b.items, item)
	}
	if s.LaborCost.IsNegative() || !domain.InCents(s.LaborCost) {
		return nil, domain.NewValidationError("labor_cost", "debe ser no negativo y en centavos")
	}
	b.laborCost = s.LaborCost
	b.laborSet = s.LaborSet
	if len(b.items) > 0 || b.laborSet {
		b.touch()
	}
	switch s.State {
	case StateCommitted:
		b.state = StateCommitted
		b.orderID = s.OrderID
	case StateValidated:
		// una validación no sobrevive fuera del proceso que confirma
		b.state = StateComposing
	case StateComposing:
		b.state = StateComposing
	}
	return b, nil
}
