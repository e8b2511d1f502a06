package entity

import "github.com/shopspring/decimal"

// RoundMoney redondea a 2 decimales. Todo importe monetario pasa por aquí antes
// de acumularse: el redondeo es por línea, no solo al final, para que tres líneas
// de 33.33 sumen exactamente 99.99.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineAmount importe de una línea: round(precioUnitario × cantidad, 2).
func LineAmount(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return RoundMoney(unitPrice.Mul(decimal.NewFromInt(quantity)))
}
