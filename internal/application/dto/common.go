package dto

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest ventana limit/offset de los listados (repuestos, movimientos, órdenes, clientes).
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize ajusta valores fuera de rango en lugar de rechazarlos:
// limit ausente toma DefaultPageLimit, se recorta a MaxPageLimit y offset negativo pasa a cero.
func (p PageRequest) Normalize() PageRequest {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Result metadatos de la página servida con count elementos.
func (p PageRequest) Result(count int) PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset, Count: count, HasMore: count == p.Limit}
}

type PageResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Count   int  `json:"count"`
	HasMore bool `json:"has_more"`
}

// ListResponse sobre de los listados paginados.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

func NewListResponse[T any](items []T, page PageRequest) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Page: page.Result(len(items))}
}

// ErrorResponse cuerpo de error HTTP. Field nombra el dato rechazado en errores de validación.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
