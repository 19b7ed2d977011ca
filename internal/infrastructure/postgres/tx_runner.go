package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrostock/agrostock-api/internal/application/procurement"
	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// Ensure TxRunner implements procurement.TxRunner.
var _ procurement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los
// repositorios de compras atados a esa tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. Los conflictos de serialización y deadlocks se traducen a
// domain.ErrConflict para que el caso de uso reintente.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	inputRepo repository.InputRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewPurchaseOrderRepository(tx)
	receiptRepo := NewGoodsReceiptRepository(tx)
	inputRepo := NewInputRepository(tx)

	if err := fn(orderRepo, receiptRepo, inputRepo); err != nil {
		if isSerializationConflict(err) {
			return domain.ErrConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationConflict(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
