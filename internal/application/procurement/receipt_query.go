package procurement

import (
	"context"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/domain"
)

// GetReceipt obtiene una recepción por ID con sus relaciones expandidas.
func (uc *PostReceiptUseCase) GetReceipt(_ context.Context, id string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	return uc.buildResponse(receipt)
}

// ListReceiptsByOrder lista las recepciones (no borradas) de una orden.
func (uc *PostReceiptUseCase) ListReceiptsByOrder(_ context.Context, orderID string) ([]dto.ReceiptResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	receipts, err := uc.receiptRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		resp, err := uc.buildResponse(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}
