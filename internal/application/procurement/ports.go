package procurement

import (
	"context"

	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// recepciones: o se persiste todo (recepción, líneas, stock, estado) o nada.
// Si la BD detecta un conflicto de serialización la implementación debe
// devolver domain.ErrConflict para que el caller reintente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		receiptRepo repository.GoodsReceiptRepository,
		inputRepo repository.InputRepository,
	) error) error
}
