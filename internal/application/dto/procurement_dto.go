package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                       `json:"supplier_id"`
	Notes      string                       `json:"notes,omitempty"`
	Details    []CreatePurchaseOrderDetail  `json:"details"`
}

// CreatePurchaseOrderDetail línea pedida: insumo, cantidad (>0) y precio pactado (>=0).
type CreatePurchaseOrderDetail struct {
	InputID   string          `json:"input_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateOrderStatusRequest body para PATCH /api/purchase-orders/:id/status
// (transiciones administrativas: APROBADA, CERRADA, CANCELADA).
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// PurchaseOrderResponse representación de una orden con sus líneas.
type PurchaseOrderResponse struct {
	ID         string                        `json:"id"`
	SupplierID string                        `json:"supplier_id"`
	Status     string                        `json:"status"`
	Total      decimal.Decimal               `json:"total"`
	Notes      string                        `json:"notes,omitempty"`
	CreatedAt  time.Time                     `json:"created_at"`
	Details    []PurchaseOrderDetailResponse `json:"details"`
}

// PurchaseOrderDetailResponse línea de la orden.
type PurchaseOrderDetailResponse struct {
	ID        string          `json:"id"`
	InputID   string          `json:"input_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CreateReceiptRequest body para POST /api/receptions. El usuario receptor
// sale del token, no del body.
type CreateReceiptRequest struct {
	PurchaseOrderID string                       `json:"purchase_order_id"`
	Notes           string                       `json:"notes,omitempty"`
	ReceivedDate    *time.Time                   `json:"received_date,omitempty"`
	Details         []CreateReceiptDetailRequest `json:"details"`
}

// CreateReceiptDetailRequest línea de entrega contra una línea de la orden.
type CreateReceiptDetailRequest struct {
	PurchaseOrderDetailID string          `json:"purchase_order_detail_id"`
	Quantity              decimal.Decimal `json:"quantity"`
	Notes                 string          `json:"notes,omitempty"`
}

// ReceiptResponse recepción creada con sus relaciones expandidas.
type ReceiptResponse struct {
	ID            string                  `json:"id"`
	PurchaseOrder PurchaseOrderResponse   `json:"purchase_order"`
	Supplier      *SupplierResponse       `json:"supplier,omitempty"`
	ReceivedBy    *UserResponse           `json:"received_by,omitempty"`
	ReceivedAt    time.Time               `json:"received_at"`
	Notes         string                  `json:"notes,omitempty"`
	Details       []ReceiptDetailResponse `json:"details"`
}

// ReceiptDetailResponse línea de la recepción.
type ReceiptDetailResponse struct {
	ID                    string          `json:"id"`
	PurchaseOrderDetailID string          `json:"purchase_order_detail_id"`
	InputID               string          `json:"input_id"`
	InputName             string          `json:"input_name"`
	Quantity              decimal.Decimal `json:"quantity"`
	Notes                 string          `json:"notes,omitempty"`
}

// TrackingResponse vista de seguimiento de una orden: avance por línea y resumen.
type TrackingResponse struct {
	PurchaseOrderID string             `json:"purchase_order_id"`
	Status          string             `json:"status"`
	Items           []TrackingItem     `json:"items"`
	Summary         TrackingSummary    `json:"summary"`
}

/// TrackingItem avance de una línea: cantidades derivadas del historial, nunca almacenadas.
type TrackingItem struct {
	PurchaseOrderDetailID string              `json:"purchase_order_detail_id"`
	InputID               string              `json:"input_id"`
	InputName             string              `json:"input_name"`
	QuantityOrdered       decimal.Decimal     `json:"quantity_ordered"`
	QuantityReceived      decimal.Decimal     `json:"quantity_received"`
	QuantityPending       decimal.Decimal     `json:"quantity_pending"`
	IsFullyReceived       bool                `json:"is_fully_received"`
	PercentageReceived    decimal.Decimal     `json:"percentage_received"`
	ReceiptHistory        []TrackingHistoryEntry `json:"receipt_history"`
}

// TrackingHistoryEntry una entrega registrada contra la línea.
type TrackingHistoryEntry struct {
	ReceiptID      string          `json:"receipt_id"`
	Quantity       decimal.Decimal `json:"quantity_received"`
	ReceivedAt     time.Time       `json:"received_at"`
	ReceivedByName string          `json:"received_by_name"`
	Notes          string          `json:"notes,omitempty"`
}

// TrackingSummary conteos a nivel de orden.
type TrackingSummary struct {
	TotalItems             int `json:"total_items"`
	FullyReceivedItems     int `json:"fully_received_items"`
	PartiallyReceivedItems int `json:"partially_received_items"`
	PendingItems           int `json:"pending_items"`
}
