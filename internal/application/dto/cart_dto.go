package dto

// AddCartItemRequest agregar un producto al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=999"`
}

// UpdateCartItemRequest fijar cantidad (0 elimina la línea).
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=999"`
}

// CheckoutRequest datos de entrega y pago para convertir el carrito en pedidos.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,min=5,max=500"`
	PaymentMethod   string `json:"payment_method" validate:"omitempty,oneof=card cod"`
	Notes           string `json:"notes" validate:"max=1000"`
}

// CheckoutResponse pedidos creados (uno por tienda).
type CheckoutResponse struct {
	Orders []OrderResponse `json:"orders"`
}
