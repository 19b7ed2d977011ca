package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleAgronomo  = "agronomo"
)

// User representa un usuario del sistema. En el núcleo de compras solo se lee
// como "quién recibió" una entrega; la autenticación vive fuera.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string // admin, bodeguero, agronomo
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
