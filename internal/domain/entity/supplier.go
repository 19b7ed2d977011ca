package entity

import "time"

// Supplier representa un proveedor de insumos (directorio de referencia).
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT / RUT
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
