package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	domainproc "github.com/agrostock/agrostock-api/internal/domain/procurement"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// PurchaseOrderUseCase casos de uso de órdenes de compra: creación con líneas,
// consulta, listado, transiciones administrativas de estado y borrado lógico.
// Las transiciones RECIBIDA / RECIBIDA_PARCIAL no pasan por aquí: son del motor
// de recepciones.
type PurchaseOrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.PurchaseOrderRepository
	receiptRepo  repository.GoodsReceiptRepository
	inputRepo    repository.InputRepository
	supplierRepo repository.SupplierRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	inputRepo repository.InputRepository,
	supplierRepo repository.SupplierRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		receiptRepo:  receiptRepo,
		inputRepo:    inputRepo,
		supplierRepo: supplierRepo,
	}
}

// Create crea la orden con sus líneas en una sola transacción. Subtotales y
// total se calculan aquí; el estado inicial es PENDIENTE.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || len(in.Details) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Status:     entity.StatusPendiente,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	total := decimal.Zero
	for _, line := range in.Details {
		if line.InputID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		input, err := uc.inputRepo.GetByID(line.InputID)
		if err != nil {
			return nil, err
		}
		if input == nil {
			return nil, domain.ErrNotFound
		}
		subtotal := line.Quantity.Mul(line.UnitPrice).Round(2)
		order.Details = append(order.Details, entity.PurchaseOrderDetail{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			InputID:         line.InputID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			Subtotal:        subtotal,
		})
		total = total.Add(subtotal)
	}
	order.Total = total.Round(2)

	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.GoodsReceiptRepository,
		_ repository.InputRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Details {
			if err := orderRepo.CreateDetail(&order.Details[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(_ context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// List lista órdenes con paginación.
func (uc *PurchaseOrderUseCase) List(_ context.Context, limit, offset int) ([]dto.PurchaseOrderResponse, error) {
	orders, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus aplica una transición administrativa (APROBADA, CERRADA, CANCELADA)
// validada contra la máquina de estados.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.PurchaseOrderResponse, error) {
	if !domainproc.IsValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.GoodsReceiptRepository,
		_ repository.InputRepository,
	) error {
		order, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !domainproc.CanAdminTransition(order.Status, status) {
			return &domain.InvalidStateError{Status: order.Status}
		}
		return orderRepo.UpdateStatus(id, status)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete marca la orden con borrado lógico. Una orden con recepciones es
// inmutable: sus entregas ya movieron stock y costos.
func (uc *PurchaseOrderUseCase) Delete(_ context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	receipts, err := uc.receiptRepo.ListByOrder(id)
	if err != nil {
		return err
	}
	if len(receipts) > 0 {
		return &domain.InvalidStateError{Status: order.Status}
	}
	return uc.orderRepo.SoftDelete(id)
}
