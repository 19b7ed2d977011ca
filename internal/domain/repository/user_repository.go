package repository

import "github.com/agrostock/agrostock-api/internal/domain/entity"

// UserRepository define el puerto de lectura de usuarios (directorio de referencia;
// el núcleo solo lo consulta para resolver quién recibió una entrega).
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
}
