package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Input representa un insumo agrícola comprable (semilla, fertilizante, agroquímico).
// Stock y AvgCost solo mutan dentro de la transacción de registro de recepciones:
// AvgCost es el costo promedio ponderado y Stock la existencia actual.
type Input struct {
	ID        string
	Name      string // único
	Unit      string // unidad de medida: kg, lt, unidad, bulto
	Stock     decimal.Decimal
	AvgCost   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
