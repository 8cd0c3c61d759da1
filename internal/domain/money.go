package domain

import "github.com/shopspring/decimal"

// MoneyScale decimales de los importes almacenados (NUMERIC(14,2)).
const MoneyScale = 2

// InCents indica si d se representa exacto en centavos; así el valor persistido
// coincide con el que se usó para calcular totales.
func InCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
