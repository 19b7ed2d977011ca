package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInputRequest body para POST /api/inputs. Stock y costo inician en 0.
type CreateInputRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// InputResponse representación de un insumo. Stock y costo son de solo lectura
// en esta superficie; los muta únicamente el registro de recepciones.
type InputResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	AvgCost   decimal.Decimal `json:"avg_cost"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// SupplierResponse representación de un proveedor.
type SupplierResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UserResponse representación mínima de un usuario (quién recibió).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
