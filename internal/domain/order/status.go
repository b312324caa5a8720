package order

import "github.com/jhoicas/supermall-api/internal/domain/entity"

// transitions estados destino permitidos desde cada estado.
// delivered y cancelled son terminales.
var transitions = map[string][]string{
	entity.OrderStatusPending:    {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed:  {entity.OrderStatusProcessing, entity.OrderStatusCancelled},
	entity.OrderStatusProcessing: {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped:    {entity.OrderStatusDelivered},
}

// ValidStatus indica si s es un estado de pedido conocido.
func ValidStatus(s string) bool {
	switch s {
	case entity.OrderStatusPending, entity.OrderStatusConfirmed, entity.OrderStatusProcessing,
		entity.OrderStatusShipped, entity.OrderStatusDelivered, entity.OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition indica si un pedido puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CustomerCanCancel el cliente solo cancela antes de que la tienda empiece a preparar el pedido.
func CustomerCanCancel(status string) bool {
	return status == entity.OrderStatusPending || status == entity.OrderStatusConfirmed
}

// NextStatuses estados a los que puede avanzar el pedido (para la UI de la tienda).
func NextStatuses(from string) []string {
	out := make([]string, len(transitions[from]))
	copy(out, transitions[from])
	return out
}
