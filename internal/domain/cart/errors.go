package cart

import (
	"fmt"

	"github.com/jhoicas/supermall-api/internal/domain"
)

// Errores del carrito; envuelven los errores de dominio para que la capa HTTP los mapee.
var (
	ErrInvalidQuantity = fmt.Errorf("%w: cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	ErrItemNotFound    = fmt.Errorf("%w: el producto no está en el carrito", domain.ErrNotFound)
)
