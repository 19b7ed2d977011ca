package procurement

import "github.com/agrostock/agrostock-api/internal/domain/entity"

// Transiciones administrativas permitidas (las transiciones RECIBIDA y
// RECIBIDA_PARCIAL son exclusivas del motor de recepciones y no pasan por aquí).
var adminTransitions = map[string][]string{
	entity.StatusPendiente: {entity.StatusAprobada, entity.StatusCancelada},
	entity.StatusAprobada:  {entity.StatusCancelada},
	entity.StatusRecibida:  {entity.StatusCerrada},
}

// CanAdminTransition valida una transición administrativa de estado.
func CanAdminTransition(from, to string) bool {
	for _, allowed := range adminTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidStatus valida que el estado pertenezca al conjunto conocido.
func IsValidStatus(s string) bool {
	switch s {
	case entity.StatusPendiente, entity.StatusAprobada, entity.StatusRecibida,
		entity.StatusRecibidaParcial, entity.StatusCerrada, entity.StatusCancelada:
		return true
	}
	return false
}
