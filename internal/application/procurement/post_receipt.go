package procurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	domainproc "github.com/agrostock/agrostock-api/internal/domain/procurement"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
	"github.com/agrostock/agrostock-api/pkg/logger"
)

// PostReceiptUseCase registra recepciones de mercancía contra una orden de compra
// de forma transaccional: crea la recepción y sus líneas, actualiza stock y costo
// promedio de cada insumo y recalcula el estado de la orden, todo con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback.
type PostReceiptUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.PurchaseOrderRepository
	receiptRepo  repository.GoodsReceiptRepository
	inputRepo    repository.InputRepository
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
	log          *logger.Logger
}

// NewPostReceiptUseCase construye el caso de uso. Los repos sueltos van atados
// al pool y solo se usan para lecturas fuera de la transacción.
func NewPostReceiptUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	inputRepo repository.InputRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *PostReceiptUseCase {
	return &PostReceiptUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		receiptRepo:  receiptRepo,
		inputRepo:    inputRepo,
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
		log:          log,
	}
}

// PostReceiptInput entrada para registrar una recepción.
type PostReceiptInput struct {
	PurchaseOrderID string
	ReceivedByID    string
	Notes           string
	ReceivedDate    *time.Time
	Details         []ReceiptLineInput
}

// ReceiptLineInput una línea de entrega contra una línea de la orden.
type ReceiptLineInput struct {
	PurchaseOrderDetailID string
	Quantity              decimal.Decimal
	Notes                 string
}

// PostReceipt valida y registra la recepción. Toda la validación ocurre antes de
// cualquier mutación; cualquier fallo revierte la transacción completa (sin
// recepción parcial, sin stock parcial, sin estado viciado). Ante un conflicto
// de concurrencia reintenta una vez antes de devolver domain.ErrConflict.
func (uc *PostReceiptUseCase) PostReceipt(ctx context.Context, in PostReceiptInput) (*dto.ReceiptResponse, error) {
	if in.PurchaseOrderID == "" || in.ReceivedByID == "" || len(in.Details) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Details {
		if line.PurchaseOrderDetailID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	receivedAt := time.Now().UTC()
	if in.ReceivedDate != nil {
		receivedAt = in.ReceivedDate.UTC()
	}
	receipt := &entity.GoodsReceipt{
		ID:              uuid.New().String(),
		PurchaseOrderID: in.PurchaseOrderID,
		ReceivedByID:    in.ReceivedByID,
		Notes:           in.Notes,
		ReceivedAt:      receivedAt,
		CreatedAt:       time.Now().UTC(),
	}

	err := uc.postInTx(ctx, receipt, in.Details)
	if errors.Is(err, domain.ErrConflict) {
		// Carrera transitoria entre recepciones concurrentes: un reintento suele bastar.
		uc.log.Warn().Str("purchase_order_id", in.PurchaseOrderID).Msg("conflicto de serialización, reintentando recepción")
		receipt.ID = uuid.New().String()
		receipt.Details = nil
		err = uc.postInTx(ctx, receipt, in.Details)
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("receipt_id", receipt.ID).
		Str("purchase_order_id", in.PurchaseOrderID).
		Int("lines", len(in.Details)).
		Msg("recepción registrada")

	return uc.buildResponse(receipt)
}

// postInTx ejecuta la secuencia completa dentro de una sola transacción.
func (uc *PostReceiptUseCase) postInTx(ctx context.Context, receipt *entity.GoodsReceipt, lines []ReceiptLineInput) error {
	return uc.txRunner.Run(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		receiptRepo repository.GoodsReceiptRepository,
		inputRepo repository.InputRepository,
	) error {
		// Bloquea la fila de la orden: serializa recepciones concurrentes contra
		// la misma orden sin contender con órdenes distintas.
		order, err := orderRepo.GetForUpdate(receipt.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !domainproc.CanReceive(order.Status) {
			return &domain.InvalidStateError{Status: order.Status}
		}

		orderDetails, err := orderRepo.GetDetails(order.ID)
		if err != nil {
			return err
		}
		byID := make(map[string]entity.PurchaseOrderDetail, len(orderDetails))
		for _, d := range orderDetails {
			byID[d.ID] = d
		}

		// Cada línea del request debe pertenecer a esta orden.
		for _, line := range lines {
			if _, ok := byID[line.PurchaseOrderDetailID]; !ok {
				return fmt.Errorf("la línea %s no pertenece a la orden %s: %w",
					line.PurchaseOrderDetailID, order.ID, domain.ErrInvalidInput)
			}
		}

		// Agregado fresco de lo ya recibido, leído dentro de la tx con la orden
		// bloqueada: dos recepciones concurrentes no pueden pasar ambas el chequeo
		// de pendiente con datos viciados.
		prior, err := receiptRepo.ListDetailsByOrder(order.ID)
		if err != nil {
			return err
		}
		received := domainproc.ReceivedByDetail(prior)

		// El request puede traer varias líneas contra el mismo detalle: se chequea
		// el total solicitado por detalle, no línea por línea.
		requested := make(map[string]decimal.Decimal, len(lines))
		for _, line := range lines {
			requested[line.PurchaseOrderDetailID] = requested[line.PurchaseOrderDetailID].Add(line.Quantity)
		}
		for detailID, reqQty := range requested {
			d := byID[detailID]
			pending := domainproc.Pending(d.Quantity, received[detailID])
			if reqQty.GreaterThan(pending) {
				input, ierr := inputRepo.GetByID(d.InputID)
				name := d.InputID
				if ierr == nil && input != nil {
					name = input.Name
				}
				return &domain.OverReceiptError{InputName: name, Requested: reqQty, Pending: pending}
			}
		}

		// Todo validado: crear recepción y líneas.
		if err := receiptRepo.Create(receipt); err != nil {
			return err
		}
		for _, line := range lines {
			rd := &entity.GoodsReceiptDetail{
				ID:                    uuid.New().String(),
				GoodsReceiptID:        receipt.ID,
				PurchaseOrderDetailID: line.PurchaseOrderDetailID,
				Quantity:              line.Quantity,
				Notes:                 line.Notes,
			}
			if err := receiptRepo.CreateDetail(rd); err != nil {
				return err
			}
			receipt.Details = append(receipt.Details, *rd)

			// Actualiza stock y costo promedio del insumo con la fila bloqueada.
			// El precio es el pactado en la línea de la orden, no uno de mercado.
			d := byID[line.PurchaseOrderDetailID]
			input, err := inputRepo.GetForUpdate(d.InputID)
			if err != nil {
				return err
			}
			if input == nil {
				return domain.ErrNotFound
			}
			newStock, newCost := domainproc.ApplyEntry(input.Stock, input.AvgCost, line.Quantity, d.UnitPrice)
			if err := inputRepo.UpdateStockAndCost(input.ID, newStock, newCost); err != nil {
				return err
			}
		}

		// Recalcula el estado con TODAS las líneas, incluyendo lo recién insertado.
		for detailID, qty := range requested {
			received[detailID] = received[detailID].Add(qty)
		}
		status := domainproc.ComputeStatus(orderDetails, received)
		return orderRepo.UpdateStatus(order.ID, status)
	})
}

// buildResponse arma la recepción con orden, proveedor, insumos y receptor expandidos.
func (uc *PostReceiptUseCase) buildResponse(receipt *entity.GoodsReceipt) (*dto.ReceiptResponse, error) {
	order, err := uc.orderRepo.GetByID(receipt.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	resp := &dto.ReceiptResponse{
		ID:            receipt.ID,
		PurchaseOrder: toOrderResponse(order),
		ReceivedAt:    receipt.ReceivedAt,
		Notes:         receipt.Notes,
	}

	if supplier, err := uc.supplierRepo.GetByID(order.SupplierID); err == nil && supplier != nil {
		resp.Supplier = &dto.SupplierResponse{
			ID: supplier.ID, Name: supplier.Name, TaxID: supplier.TaxID,
			Email: supplier.Email, Phone: supplier.Phone,
		}
	}
	if user, err := uc.userRepo.GetByID(receipt.ReceivedByID); err == nil && user != nil {
		resp.ReceivedBy = &dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	}

	detailByID := make(map[string]entity.PurchaseOrderDetail, len(order.Details))
	for _, d := range order.Details {
		detailByID[d.ID] = d
	}
	for _, rd := range receipt.Details {
		item := dto.ReceiptDetailResponse{
			ID:                    rd.ID,
			PurchaseOrderDetailID: rd.PurchaseOrderDetailID,
			Quantity:              rd.Quantity,
			Notes:                 rd.Notes,
		}
		if d, ok := detailByID[rd.PurchaseOrderDetailID]; ok {
			item.InputID = d.InputID
			if input, err := uc.inputRepo.GetByID(d.InputID); err == nil && input != nil {
				item.InputName = input.Name
			}
		}
		resp.Details = append(resp.Details, item)
	}
	return resp, nil
}

// toOrderResponse mapea la entidad al DTO de respuesta.
func toOrderResponse(order *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	resp := dto.PurchaseOrderResponse{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		Status:     order.Status,
		Total:      order.Total,
		Notes:      order.Notes,
		CreatedAt:  order.CreatedAt,
	}
	for _, d := range order.Details {
		resp.Details = append(resp.Details, dto.PurchaseOrderDetailResponse{
			ID:        d.ID,
			InputID:   d.InputID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	return resp
}
