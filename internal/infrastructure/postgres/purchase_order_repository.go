package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las consultas excluyen siempre las órdenes con borrado lógico.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, supplier_id, status, total, notes, deleted_at, created_at, updated_at`

// Create persiste la cabecera de la orden.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, status, total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.Status, order.Total, order.Notes, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de la orden.
func (r *PurchaseOrderRepo) CreateDetail(detail *entity.PurchaseOrderDetail) error {
	query := `
		INSERT INTO purchase_order_details (id, purchase_order_id, input_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.PurchaseOrderID, detail.InputID, detail.Quantity, detail.UnitPrice, detail.Subtotal)
	if err != nil {
		return fmt.Errorf("create purchase order detail: %w", err)
	}
	return nil
}

// GetByID obtiene la orden (no borrada) con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 AND deleted_at IS NULL`
	return r.getOne(query, id, true)
}

// GetForUpdate obtiene la orden y bloquea su fila (SELECT FOR UPDATE):
// serializa las recepciones concurrentes contra la misma orden. No carga las
// líneas; el caller las pide aparte dentro de la misma tx.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.getOne(query, id, false)
}

func (r *PurchaseOrderRepo) getOne(query, id string, withDetails bool) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var notes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.SupplierID, &o.Status, &o.Total, &notes, &o.DeletedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if notes != nil {
		o.Notes = *notes
	}
	if withDetails {
		details, err := r.GetDetails(o.ID)
		if err != nil {
			return nil, err
		}
		o.Details = details
	}
	return &o, nil
}

// GetDetails devuelve las líneas de la orden en orden de inserción.
func (r *PurchaseOrderRepo) GetDetails(orderID string) ([]entity.PurchaseOrderDetail, error) {
	query := `
		SELECT id, purchase_order_id, input_id, quantity, unit_price, subtotal
		FROM purchase_order_details WHERE purchase_order_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order details: %w", err)
	}
	defer rows.Close()
	var details []entity.PurchaseOrderDetail
	for rows.Next() {
		var d entity.PurchaseOrderDetail
		if err := rows.Scan(&d.ID, &d.PurchaseOrderID, &d.InputID, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// UpdateStatus persiste el estado recalculado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order status: orden %s no encontrada", id)
	}
	return nil
}

// List lista órdenes no borradas, más recientes primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		var notes *string
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.Status, &o.Total, &notes, &o.DeletedAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		if notes != nil {
			o.Notes = *notes
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// SoftDelete marca la orden como borrada (tombstone).
func (r *PurchaseOrderRepo) SoftDelete(id string) error {
	query := `UPDATE purchase_orders SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft delete purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("soft delete purchase order: orden %s no encontrada", id)
	}
	return nil
}
