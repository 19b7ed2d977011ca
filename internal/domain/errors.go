package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto de concurrencia, reintente la operación")
)

// InvalidStateError indica que la orden de compra no admite la operación en su
// estado actual (ej. recibir contra una orden PENDIENTE o CERRADA).
type InvalidStateError struct {
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("la orden en estado %s no admite recepciones", e.Status)
}

// OverReceiptError indica que la cantidad solicitada excede lo pendiente de una
// línea. Incluye los datos que el mensaje al usuario debe nombrar.
type OverReceiptError struct {
	InputName string
	Requested decimal.Decimal
	Pending   decimal.Decimal
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("la cantidad recibida de %s (%s) excede lo pendiente (%s)",
		e.InputName, e.Requested.String(), e.Pending.String())
}
