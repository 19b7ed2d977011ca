package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los agregados excluyen recepciones con borrado lógico.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create persiste la cabecera de la recepción.
func (r *GoodsReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (id, purchase_order_id, received_by_id, notes, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.PurchaseOrderID, receipt.ReceivedByID, receipt.Notes,
		receipt.ReceivedAt, receipt.CreatedAt)
	if err != nil {
		return fmt.Errorf("create goods receipt: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de la recepción.
func (r *GoodsReceiptRepo) CreateDetail(detail *entity.GoodsReceiptDetail) error {
	query := `
		INSERT INTO goods_receipt_details (id, goods_receipt_id, purchase_order_detail_id, quantity, notes)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.GoodsReceiptID, detail.PurchaseOrderDetailID, detail.Quantity, detail.Notes)
	if err != nil {
		return fmt.Errorf("create goods receipt detail: %w", err)
	}
	return nil
}

// GetByID obtiene una recepción (no borrada) con sus líneas.
func (r *GoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	query := `
		SELECT id, purchase_order_id, received_by_id, notes, received_at, deleted_at, created_at
		FROM goods_receipts WHERE id = $1 AND deleted_at IS NULL`
	var gr entity.GoodsReceipt
	var notes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&gr.ID, &gr.PurchaseOrderID, &gr.ReceivedByID, &notes, &gr.ReceivedAt, &gr.DeletedAt, &gr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}
	if notes != nil {
		gr.Notes = *notes
	}
	details, err := r.detailsByReceipt(gr.ID)
	if err != nil {
		return nil, err
	}
	gr.Details = details
	return &gr, nil
}

func (r *GoodsReceiptRepo) detailsByReceipt(receiptID string) ([]entity.GoodsReceiptDetail, error) {
	query := `
		SELECT id, goods_receipt_id, purchase_order_detail_id, quantity, notes
		FROM goods_receipt_details WHERE goods_receipt_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("get receipt details: %w", err)
	}
	defer rows.Close()
	return scanReceiptDetails(rows)
}

// ListDetailsByOrder devuelve todas las líneas de recepción no borradas de la
// orden. Es la fuente de los agregados recibida/pendiente por línea.
func (r *GoodsReceiptRepo) ListDetailsByOrder(orderID string) ([]entity.GoodsReceiptDetail, error) {
	query := `
		SELECT d.id, d.goods_receipt_id, d.purchase_order_detail_id, d.quantity, d.notes
		FROM goods_receipt_details d
		JOIN goods_receipts gr ON gr.id = d.goods_receipt_id
		WHERE gr.purchase_order_id = $1 AND gr.deleted_at IS NULL`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list receipt details by order: %w", err)
	}
	defer rows.Close()
	return scanReceiptDetails(rows)
}

func scanReceiptDetails(rows pgx.Rows) ([]entity.GoodsReceiptDetail, error) {
	var details []entity.GoodsReceiptDetail
	for rows.Next() {
		var d entity.GoodsReceiptDetail
		var notes *string
		if err := rows.Scan(&d.ID, &d.GoodsReceiptID, &d.PurchaseOrderDetailID, &d.Quantity, &notes); err != nil {
			return nil, fmt.Errorf("scan receipt detail: %w", err)
		}
		if notes != nil {
			d.Notes = *notes
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListByOrder lista las recepciones no borradas de una orden, más antiguas primero.
func (r *GoodsReceiptRepo) ListByOrder(orderID string) ([]*entity.GoodsReceipt, error) {
	query := `
		SELECT id, purchase_order_id, received_by_id, notes, received_at, deleted_at, created_at
		FROM goods_receipts WHERE purchase_order_id = $1 AND deleted_at IS NULL
		ORDER BY received_at, created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list receipts by order: %w", err)
	}
	defer rows.Close()
	var list []*entity.GoodsReceipt
	for rows.Next() {
		var gr entity.GoodsReceipt
		var notes *string
		if err := rows.Scan(&gr.ID, &gr.PurchaseOrderID, &gr.ReceivedByID, &notes, &gr.ReceivedAt, &gr.DeletedAt, &gr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		if notes != nil {
			gr.Notes = *notes
		}
		list = append(list, &gr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, gr := range list {
		details, err := r.detailsByReceipt(gr.ID)
		if err != nil {
			return nil, err
		}
		gr.Details = details
	}
	return list, nil
}

// History devuelve el historial cronológico de entregas por línea de la orden,
// con el nombre del receptor resuelto vía join con users.
func (r *GoodsReceiptRepo) History(orderID string) ([]repository.ReceiptHistoryRow, error) {
	query := `
		SELECT gr.id, d.purchase_order_detail_id, d.quantity, gr.received_at,
		       COALESCE(u.name, ''), COALESCE(d.notes, '')
		FROM goods_receipt_details d
		JOIN goods_receipts gr ON gr.id = d.goods_receipt_id
		LEFT JOIN users u ON u.id = gr.received_by_id
		WHERE gr.purchase_order_id = $1 AND gr.deleted_at IS NULL
		ORDER BY gr.received_at, gr.created_at, d.id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("receipt history: %w", err)
	}
	defer rows.Close()
	var history []repository.ReceiptHistoryRow
	for rows.Next() {
		var row repository.ReceiptHistoryRow
		if err := rows.Scan(&row.ReceiptID, &row.PurchaseOrderDetailID, &row.Quantity,
			&row.ReceivedAt, &row.ReceivedByName, &row.Notes); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		history = append(history, row)
	}
	return history, rows.Err()
}
