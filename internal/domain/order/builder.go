// Package order contiene la máquina de estados que compone una orden de servicio
// antes de confirmarla: Empty → Composing → Validated → Committed.
//
// El Builder es propiedad exclusiva de una sesión de composición; no es seguro
// para uso concurrente y los stores de borradores guardan copias (Snapshot), nunca
// el Builder compartido.
package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain"
)

// State estado del Builder.
type State string

const (
	StateEmpty     State = "empty"
	StateComposing State = "composing"
	StateValidated State = "validated"
	StateCommitted State = "committed"
)

// ErrCommitted se devuelve al intentar mutar un Builder ya confirmado.
var ErrCommitted = fmt.Errorf("%w: la orden ya fue confirmada", domain.ErrConflict)

// Builder acumula líneas y mano de obra y mantiene los totales siempre recalculados.
type Builder struct {
	state         State
	items         []LineItem
	laborCost     decimal.Decimal
	laborSet      bool
	partsSubtotal decimal.Decimal
	total         decimal.Decimal
	orderID       int64
}

// NewBuilder crea un Builder vacío.
func NewBuilder() *Builder {
	return &Builder{state: StateEmpty}
}

// Plan es la foto validada que consume la confirmación.
type Plan struct {
	ClientID      int64
	VehicleID     int64
	Items         []LineItem
	LaborCost     decimal.Decimal
	PartsSubtotal decimal.Decimal
	Total         decimal.Decimal
}

// QuantityByPartName agrega cantidades por nombre de repuesto; la verificación de stock
// se hace sobre el total pedido de cada repuesto, no línea a línea.
func (p Plan) QuantityByPartName() map[string]int {
	out := make(map[string]int, len(p.Items))
	for _, it := range p.Items {
		out[it.PartName] += it.Quantity
	}
	return out
}

func (b *Builder) State() State { return b.state }

// Items devuelve una copia de las líneas actuales.
func (b *Builder) Items() []LineItem {
	out := make([]LineItem, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Builder) LaborCost() decimal.Decimal { return b.laborCost }

// LaborSet indica si la mano de obra fue fijada explícitamente (aunque sea cero).
func (b *Builder) LaborSet() bool { return b.laborSet }

func (b *Builder) PartsSubtotal() decimal.Decimal { return b.partsSubtotal }

func (b *Builder) Total() decimal.Decimal { return b.total }

// OrderID id de la orden persistida; cero mientras no esté confirmada.
func (b *Builder) OrderID() int64 { return b.orderID }

// AddLineItem valida y agrega una línea. Ante error el estado no cambia.
func (b *Builder) AddLineItem(partName string, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	if b.state == StateCommitted {
		return LineItem{}, ErrCommitted
	}
	item, err := NewLineItem(partName, unitPrice, quantity)
	if err != nil {
		return LineItem{}, err
	}
	b.items = append(b.items, item)
	b.touch()
	return item, nil
}

// RemoveLineItem elimina la línea en la posición index. Fuera de rango no es fatal:
// devuelve ValidationError y no modifica nada.
func (b *Builder) RemoveLineItem(index int) error {
	if b.state == StateCommitted {
		return ErrCommitted
	}
	if index < 0 || index >= len(b.items) {
		return domain.NewValidationError("index", fmt.Sprintf("fuera de rango (0..%d)", len(b.items)-1))
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	b.touch()
	return nil
}

// SetLaborCost fija la mano de obra; debe ser no negativa.
func (b *Builder) SetLaborCost(value decimal.Decimal) error {
	if b.state == StateCommitted {
		return ErrCommitted
	}
	if value.IsNegative() {
		return domain.NewValidationError("labor_cost", "no puede ser negativo")
	}
	if !domain.InCents(value) {
		return domain.NewValidationError("labor_cost", "admite como máximo dos decimales")
	}
	b.laborCost = value
	b.laborSet = true
	b.touch()
	return nil
}

// Validate comprueba las precondiciones de la confirmación y pasa a Validated.
// El error nombra el primer campo faltante.
func (b *Builder) Validate(clientID, vehicleID int64) (Plan, error) {
	if b.state == StateCommitted {
		return Plan{}, ErrCommitted
	}
	switch {
	case clientID <= 0:
		return Plan{}, domain.NewValidationError("client_id", "requerido")
	case vehicleID <= 0:
		return Plan{}, domain.NewValidationError("vehicle_id", "requerido")
	case len(b.items) == 0:
		return Plan{}, domain.NewValidationError("line_items", "la orden necesita al menos una línea")
	case !b.laborSet:
		return Plan{}, domain.NewValidationError("labor_cost", "debe fijarse explícitamente (puede ser 0)")
	}
	b.state = StateValidated
	return Plan{
		ClientID:      clientID,
		VehicleID:     vehicleID,
		Items:         b.Items(),
		LaborCost:     b.laborCost,
		PartsSubtotal: b.partsSubtotal,
		Total:         b.total,
	}, nil
}

// MarkCommitted registra el id de la orden persistida. Solo válido desde Validated.
func (b *Builder) MarkCommitted(orderID int64) error {
	if b.state != StateValidated {
		return fmt.Errorf("%w: no se puede confirmar desde el estado %s", domain.ErrConflict, b.state)
	}
	b.orderID = orderID
	b.state = StateCommitted
	return nil
}

// Abort devuelve un Builder validado a Composing tras un fallo de confirmación.
func (b *Builder) Abort() {
	if b.state == StateValidated {
		b.state = StateComposing
	}
}

// touch recalcula totales y pasa a Composing; cualquier mutación invalida una validación previa.
func (b *Builder) touch() {
	subtotal := decimal.Zero
	for _, it := range b.items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	b.partsSubtotal = subtotal
	b.total = subtotal.Add(b.laborCost)
	b.state = StateComposing
}
