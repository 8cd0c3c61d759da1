package entity

// StockSummary vista materializada del libro por repuesto: entradas, salidas y saldo.
// Balance debe coincidir siempre con StockQuantity (cantidad almacenada en parts).
type StockSummary struct {
	PartID        int64
	PartName      string
	Reference     string
	TotalEntries  int64
	TotalExits    int64
	Balance       int64 // TotalEntries - TotalExits
	StockQuantity int64
}

// Consistent indica si el saldo del libro coincide con el stock almacenado.
func (s StockSummary) Consistent() bool {
	return s.Balance == s.StockQuantity
}

// Drift diferencia entre el stock almacenado y el saldo del libro (0 si es consistente).
func (s StockSummary) Drift() int64 {
	return s.StockQuantity - s.Balance
}
