package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
)

// ReceiptHistoryRow es una fila del historial de entregas de una línea de orden:
// qué recepción, cuánto, cuándo y quién (nombre resuelto vía join con users).
type ReceiptHistoryRow struct {
	ReceiptID             string
	PurchaseOrderDetailID string
	Quantity              decimal.Decimal
	ReceivedAt            time.Time
	ReceivedByName        string
	Notes                 string
}

// GoodsReceiptRepository define el puerto de persistencia para recepciones de
// mercancía y sus líneas. Las recepciones borradas lógicamente no cuentan para
// los agregados.
type GoodsReceiptRepository interface {
	Create(receipt *entity.GoodsReceipt) error
	CreateDetail(detail *entity.GoodsReceiptDetail) error
	GetByID(id string) (*entity.GoodsReceipt, error)
	// ListDetailsByOrder devuelve todas las líneas de recepción no borradas de la
	// orden; de aquí se derivan recibida/pendiente por línea.
	ListDetailsByOrder(orderID string) ([]entity.GoodsReceiptDetail, error)
	ListByOrder(orderID string) ([]*entity.GoodsReceipt, error)
	// History devuelve el historial cronológico de entregas por línea de la orden.
	History(orderID string) ([]ReceiptHistoryRow, error)
}
