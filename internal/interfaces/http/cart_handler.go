package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermall-api/internal/application/cart"
	"github.com/jhoicas/supermall-api/internal/application/dto"
	domaincart "github.com/jhoicas/supermall-api/internal/domain/cart"
)

// OrderMetrics contador de pedidos creados.
type OrderMetrics interface {
	OrdersPlaced(paymentMethod string, n int)
}

// CartHandler carrito del cliente y checkout.
type CartHandler struct {
	uc      *cart.CartUseCase
	metrics OrderMetrics
}

// NewCartHandler construye el handler. metrics puede ser nil.
func NewCartHandler(uc *cart.CartUseCase, metrics OrderMetrics) *CartHandler {
	return &CartHandler{uc: uc, metrics: metrics}
}

// Get godoc
// @Summary      Ver carrito
// @Description  Precios y disponibilidad se refrescan contra el catálogo en cada lectura.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  cart.Cart
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Get(c.UserContext(), GetUserID(c)))
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product_id y quantity"
// @Success      200   {object}  cart.Cart
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := bindJSON(c, &in); err != nil {
		return fail(c, err)
	}
	return h.respond(c)(h.uc.AddItem(c.UserContext(), GetUserID(c), in))
}

// UpdateItem godoc
// @Summary      Cambiar cantidad (0 elimina la línea)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                     true  "ID del producto"
// @Param        body       body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200        {object}  cart.Cart
// @Failure      404        {object}  dto.ErrorResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := bindJSON(c, &in); err != nil {
		return fail(c, err)
	}
	return h.respond(c)(h.uc.UpdateItem(c.UserContext(), GetUserID(c), c.Params("productId"), in))
}

// RemoveItem godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  cart.Cart
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.RemoveItem(c.UserContext(), GetUserID(c), c.Params("productId")))
}

// SaveForLater godoc
// @Summary      Guardar para después
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  cart.Cart
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId}/save [post]
func (h *CartHandler) SaveForLater(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.SaveForLater(c.UserContext(), GetUserID(c), c.Params("productId")))
}

// MoveToCart godoc
// @Summary      Mover de "guardados" al carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  cart.Cart
// @Failure      404        {object}  dto.ErrorResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/cart/saved/{productId}/move [post]
func (h *CartHandler) MoveToCart(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.MoveToCart(c.UserContext(), GetUserID(c), c.Params("productId")))
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  cart.Cart
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Clear(c.UserContext(), GetUserID(c)))
}

// Checkout godoc
// @Summary      Confirmar compra
// @Description  Crea un pedido por tienda con los productos del carrito.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Dirección de entrega y método de pago"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := bindJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Checkout(c.UserContext(), GetUserID(c), in)
	if out != nil && h.metrics != nil {
		for _, o := range out.Orders {
			h.metrics.OrdersPlaced(o.PaymentMethod, 1)
		}
	}
	switch {
	case err != nil && out != nil:
		return partialCheckout(c, err, out.Orders)
	case err != nil:
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// partialCheckout informa el error junto con los pedidos que sí se crearon.
func partialCheckout(c *fiber.Ctx, err error, orders []dto.OrderResponse) error {
	status, body := errorBody(c, err)
	return c.Status(status).JSON(partialCheckoutResponse{ErrorResponse: body, Orders: orders})
}

type partialCheckoutResponse struct {
	dto.ErrorResponse
	Orders []dto.OrderResponse `json:"orders"`
}

func (h *CartHandler) respond(c *fiber.Ctx) func(*domaincart.Cart, error) error {
	return func(ct *domaincart.Cart, err error) error {
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(ct)
	}
}
