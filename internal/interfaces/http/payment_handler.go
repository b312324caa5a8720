package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/payments"
	"github.com/jhoicas/supermall-api/internal/application/ports"
)

// WebhookMetrics contador de eventos de la pasarela por resultado.
type WebhookMetrics interface {
	WebhookEvent(result string)
}

// PaymentHandler pagos con tarjeta vía Stripe.
type PaymentHandler struct {
	uc      *payments.PaymentUseCase
	metrics WebhookMetrics
}

// NewPaymentHandler construye el handler. metrics puede ser nil.
func NewPaymentHandler(uc *payments.PaymentUseCase, metrics WebhookMetrics) *PaymentHandler {
	return &PaymentHandler{uc: uc, metrics: metrics}
}

// CreateIntent godoc
// @Summary      Crear PaymentIntent para un pedido
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentIntentRequest  true  "order_id"
// @Success      200   {object}  dto.PaymentIntentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/payments/create-intent [post]
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var in dto.CreatePaymentIntentRequest
	if err := bindJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CreateIntent(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar pago
// @Description  Consulta el intent en Stripe y actualiza el pedido.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmPaymentRequest  true  "payment_intent_id"
// @Success      200   {object}  dto.PaymentStatusResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/payments/confirm [post]
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmPaymentRequest
	if err := bindJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Confirm(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Webhook de Stripe
// @Description  Verifica la firma Stripe-Signature sobre el cuerpo crudo. Cada evento se aplica una vez.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header  string  true  "Firma del evento"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payments/webhook [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	// Body() pertenece al buffer de fasthttp; se copia antes de pasarlo al caso de uso
	payload := append([]byte(nil), c.Body()...)
	err := h.uc.HandleWebhook(c.UserContext(), payload, c.Get("Stripe-Signature"))
	h.observe(err)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"received": true})
}

// Refund godoc
// @Summary      Reembolsar pedido pagado con tarjeta
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PaymentStatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/refund [post]
func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	out, err := h.uc.Refund(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *PaymentHandler) observe(err error) {
	if h.metrics == nil {
		return
	}
	switch {
	case err == nil:
		h.metrics.WebhookEvent("ok")
	case errors.Is(err, ports.ErrInvalidSignature):
		h.metrics.WebhookEvent("invalid_signature")
	default:
		h.metrics.WebhookEvent("error")
	}
}
