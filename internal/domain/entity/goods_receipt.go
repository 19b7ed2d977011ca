package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceipt representa un evento de entrega contra una orden de compra
// (posiblemente parcial, posiblemente uno de varios). Se crea de forma atómica
// junto con todas sus líneas; nunca existe a medias.
type GoodsReceipt struct {
	ID              string
	PurchaseOrderID string
	ReceivedByID    string
	Notes           string
	ReceivedAt      time.Time // normalizada a UTC
	DeletedAt       *time.Time
	CreatedAt       time.Time
	Details         []GoodsReceiptDetail
}

// GoodsReceiptDetail representa una línea de entrega: referencia exactamente una
// línea de la orden y la cantidad recibida en esta entrega (>0).
// Inmutable después de creada; las correcciones requieren una nueva recepción.
type GoodsReceiptDetail struct {
	ID                    string
	GoodsReceiptID        string
	PurchaseOrderDetailID string
	Quantity              decimal.Decimal
	Notes                 string
}
