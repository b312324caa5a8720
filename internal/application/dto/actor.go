package dto

// Actor identidad del solicitante extraída del token por el middleware.
// VendorID solo viene para vendedores con tienda.
type Actor struct {
	UserID   string
	Role     string
	VendorID string
}

// IsAdmin indica si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == "admin" }
