package repository

import (
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
)

// InputRepository define el puerto de persistencia para insumos.
// Stock y costo promedio solo se actualizan dentro de la transacción de recepción.
type InputRepository interface {
	Create(input *entity.Input) error
	GetByID(id string) (*entity.Input, error)
	GetByName(name string) (*entity.Input, error)
	List(limit, offset int) ([]*entity.Input, error)
	// GetForUpdate bloquea la fila del insumo (SELECT FOR UPDATE) para serializar
	// actualizaciones concurrentes de stock/costo desde distintas órdenes.
	GetForUpdate(id string) (*entity.Input, error)
	UpdateStockAndCost(id string, stock, avgCost decimal.Decimal) error
}
