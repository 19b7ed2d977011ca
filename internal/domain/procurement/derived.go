package procurement

import (
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
)

// Las cantidades recibida/pendiente de una línea nunca se almacenan: se derivan
// del historial de recepciones en cada lectura para evitar estado redundante
// que pueda divergir.

// ReceivedByDetail acumula la cantidad recibida por línea de orden a partir de
// las líneas de recepción (excluye recepciones borradas; el repositorio ya las
// filtra).
func ReceivedByDetail(receiptDetails []entity.GoodsReceiptDetail) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(receiptDetails))
	for _, rd := range receiptDetails {
		totals[rd.PurchaseOrderDetailID] = totals[rd.PurchaseOrderDetailID].Add(rd.Quantity)
	}
	return totals
}

// Pending devuelve la cantidad pendiente de una línea: pedida menos recibida.
// Por invariante de escritura nunca es negativa; se acota a cero por si acaso
// el dato persistido la viola.
func Pending(ordered, received decimal.Decimal) decimal.Decimal {
	p := ordered.Sub(received)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// IsFullyReceived indica si la línea quedó completamente recibida.
func IsFullyReceived(ordered, received decimal.Decimal) bool {
	return received.GreaterThanOrEqual(ordered)
}

// PercentageReceived devuelve round(recibida/pedida*100). Con pedida == 0
// devuelve 0 (guardia contra división por cero).
func PercentageReceived(ordered, received decimal.Decimal) decimal.Decimal {
	if ordered.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return received.Div(ordered).Mul(decimal.NewFromInt(100)).Round(0)
}

// ComputeStatus recalcula el estado de la orden evaluando TODAS sus líneas:
// RECIBIDA si cada línea satisface recibida >= pedida, si no RECIBIDA_PARCIAL.
// Debe invocarse con los agregados frescos (incluida la recepción recién creada)
// dentro de la misma transacción que escribe el estado.
func ComputeStatus(details []entity.PurchaseOrderDetail, received map[string]decimal.Decimal) string {
	for _, d := range details {
		if !IsFullyReceived(d.Quantity, received[d.ID]) {
			return entity.StatusRecibidaParcial
		}
	}
	return entity.StatusRecibida
}

// CanReceive indica si el estado de la orden permite registrar una recepción.
// Solo APROBADA y RECIBIDA_PARCIAL son puntos de partida válidos.
func CanReceive(status string) bool {
	return status == entity.StatusAprobada || status == entity.StatusRecibidaParcial
}
