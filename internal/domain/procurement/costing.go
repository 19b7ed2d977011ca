package procurement

import "github.com/shopspring/decimal"

// ApplyEntry implementa el costo promedio ponderado para una entrada de insumo
// (servicio de dominio, puro).
// NuevoCosto = ((StockActual * CostoActual) + (CantRecibida * PrecioUnitario)) / (StockActual + CantRecibida)
// Si el stock resultante es cero se conserva el costo anterior (evita división
// por cero; no hay existencias sobre las cuales promediar).
// Stock y costo resultantes se redondean a 2 decimales antes de persistir.
func ApplyEntry(stock, avgCost, qty, unitPrice decimal.Decimal) (newStock, newAvgCost decimal.Decimal) {
	newStock = stock.Add(qty)
	if newStock.IsZero() {
		return newStock.Round(2), avgCost.Round(2)
	}
	num := stock.Mul(avgCost).Add(qty.Mul(unitPrice))
	newAvgCost = num.Div(newStock)
	return newStock.Round(2), newAvgCost.Round(2)
}
