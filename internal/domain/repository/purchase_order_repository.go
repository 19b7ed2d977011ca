package repository

import "github.com/agrostock/agrostock-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra
// y sus líneas. Las órdenes con borrado lógico no se devuelven.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateDetail(detail *entity.PurchaseOrderDetail) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE): serializa las
	// recepciones concurrentes contra la misma orden sin contender con otras.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	GetDetails(orderID string) ([]entity.PurchaseOrderDetail, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	SoftDelete(id string) error
}
