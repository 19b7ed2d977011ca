package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. Las transiciones RECIBIDA / RECIBIDA_PARCIAL
// solo las realiza el motor de recepciones a partir del agregado de entregas;
// el resto son acciones administrativas.
const (
	StatusPendiente       = "PENDIENTE"
	StatusAprobada        = "APROBADA"
	StatusRecibida        = "RECIBIDA"
	StatusRecibidaParcial = "RECIBIDA_PARCIAL"
	StatusCerrada         = "CERRADA"
	StatusCancelada       = "CANCELADA"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// Total es la suma de los subtotales de sus líneas. DeletedAt marca borrado lógico.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	Status     string
	Total      decimal.Decimal
	Notes      string
	DeletedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Details    []PurchaseOrderDetail
}

// PurchaseOrderDetail representa una línea de la orden: insumo pedido, cantidad (>0)
// y precio unitario pactado (>=0). Inmutable una vez existen recepciones contra ella.
type PurchaseOrderDetail struct {
	ID              string
	PurchaseOrderID string
	InputID         string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	Subtotal        decimal.Decimal
}
