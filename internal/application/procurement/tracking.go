package procurement

import (
	"context"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/domain"
	domainproc "github.com/agrostock/agrostock-api/internal/domain/procurement"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// TrackingUseCase construye la vista de seguimiento de una orden de compra.
// Lectura pura: todo se deriva del estado ya persistido, sin escrituras.
type TrackingUseCase struct {
	orderRepo   repository.PurchaseOrderRepository
	receiptRepo repository.GoodsReceiptRepository
	inputRepo   repository.InputRepository
}

// NewTrackingUseCase construye el caso de uso.
func NewTrackingUseCase(
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	inputRepo repository.InputRepository,
) *TrackingUseCase {
	return &TrackingUseCase{orderRepo: orderRepo, receiptRepo: receiptRepo, inputRepo: inputRepo}
}

// GetTracking devuelve por línea: pedida, recibida, pendiente, completa y
// porcentaje, con el historial cronológico de entregas, más el resumen de la
// orden. Tolera órdenes sin líneas (arreglos vacíos, conteos en cero).
func (uc *TrackingUseCase) GetTracking(_ context.Context, orderID string) (*dto.TrackingResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	history, err := uc.receiptRepo.History(orderID)
	if err != nil {
		return nil, err
	}
	historyByDetail := make(map[string][]repository.ReceiptHistoryRow)
	for _, row := range history {
		historyByDetail[row.PurchaseOrderDetailID] = append(historyByDetail[row.PurchaseOrderDetailID], row)
	}

	resp := &dto.TrackingResponse{
		PurchaseOrderID: order.ID,
		Status:          order.Status,
		Items:           []dto.TrackingItem{},
	}
	resp.Summary.TotalItems = len(order.Details)

	for _, d := range order.Details {
		item := dto.TrackingItem{
			PurchaseOrderDetailID: d.ID,
			InputID:               d.InputID,
			QuantityOrdered:       d.Quantity,
			ReceiptHistory:        []dto.TrackingHistoryEntry{},
		}
		if input, err := uc.inputRepo.GetByID(d.InputID); err == nil && input != nil {
			item.InputName = input.Name
		}

		received := item.QuantityReceived // zero
		for _, row := range historyByDetail[d.ID] {
			received = received.Add(row.Quantity)
			item.ReceiptHistory = append(item.ReceiptHistory, dto.TrackingHistoryEntry{
				ReceiptID:      row.ReceiptID,
				Quantity:       row.Quantity,
				ReceivedAt:     row.ReceivedAt,
				ReceivedByName: row.ReceivedByName,
				Notes:          row.Notes,
			})
		}
		item.QuantityReceived = received
		item.QuantityPending = domainproc.Pending(d.Quantity, received)
		item.IsFullyReceived = domainproc.IsFullyReceived(d.Quantity, received)
		item.PercentageReceived = domainproc.PercentageReceived(d.Quantity, received)

		switch {
		case item.IsFullyReceived:
			resp.Summary.FullyReceivedItems++
		case received.IsPositive():
			resp.Summary.PartiallyReceivedItems++
		default:
			resp.Summary.PendingItems++
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}
