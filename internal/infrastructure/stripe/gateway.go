// Package stripe implementa el puerto PaymentGateway con PaymentIntents de Stripe.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	stripeapi "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/pkg/config"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

var _ ports.PaymentGateway = (*Gateway)(nil)

// Gateway cliente de Stripe con su propia API key (sin estado global).
type Gateway struct {
	sc             *client.API
	publishableKey string
	webhookSecret  string
	log            *logger.Logger
}

// NewGateway valida la configuración y construye el cliente. backends nil usa los de Stripe.
func NewGateway(cfg config.StripeConfig, backends *stripeapi.Backends, log *logger.Logger) (*Gateway, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	if !strings.HasPrefix(cfg.SecretKey, "sk_") && !strings.HasPrefix(cfg.SecretKey, "rk_") {
		return nil, fmt.Errorf("stripe: invalid secret key format")
	}
	sc := &client.API{}
	sc.Init(cfg.SecretKey, backends)
	return &Gateway{
		sc:             sc,
		publishableKey: cfg.PublishableKey,
		webhookSecret:  cfg.WebhookSecret,
		log:            log.Component("stripe"),
	}, nil
}

func (g *Gateway) PublishableKey() string { return g.publishableKey }

// CreateIntent crea un PaymentIntent con métodos de pago automáticos.
func (g *Gateway) CreateIntent(ctx context.Context, in ports.CreateIntentInput) (*ports.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentParams{
		Amount:   stripeapi.Int64(in.Amount),
		Currency: stripeapi.String(in.Currency),
		AutomaticPaymentMethods: &stripeapi.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeapi.Bool(true),
		},
	}
	if in.Description != "" {
		params.Description = stripeapi.String(in.Description)
	}
	if in.ReceiptEmail != "" {
		params.ReceiptEmail = stripeapi.String(in.ReceiptEmail)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}
	params.Context = ctx

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		g.log.Error().Err(err).Str("order_id", in.Metadata["order_id"]).Msg("stripe: crear payment intent")
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	g.log.Debug().Str("intent_id", pi.ID).Int64("amount", pi.Amount).Msg("payment intent creado")
	return toIntent(pi), nil
}

func (g *Gateway) GetIntent(ctx context.Context, intentID string) (*ports.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.sc.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: get payment intent: %w", err)
	}
	return toIntent(pi), nil
}

// Refund reembolso total del intent.
func (g *Gateway) Refund(ctx context.Context, intentID string) error {
	params := &stripeapi.RefundParams{PaymentIntent: stripeapi.String(intentID)}
	params.SetIdempotencyKey("refund-" + intentID)
	params.Context = ctx
	r, err := g.sc.Refunds.New(params)
	if err != nil {
		return fmt.Errorf("stripe: refund: %w", err)
	}
	g.log.Info().Str("intent_id", intentID).Str("refund_id", r.ID).Str("status", string(r.Status)).Msg("reembolso creado")
	return nil
}

// ParseWebhook verifica la firma y decodifica el evento. Cualquier fallo de firma es ports.ErrInvalidSignature.
func (g *Gateway) ParseWebhook(payload []byte, signature string) (*ports.WebhookEvent, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		g.log.Warn().Err(err).Msg("stripe: firma de webhook rechazada")
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidSignature, err)
	}
	out := &ports.WebhookEvent{ID: ev.ID, Type: string(ev.Type)}
	if strings.HasPrefix(out.Type, "payment_intent.") && ev.Data != nil {
		var pi stripeapi.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("stripe: decode payment intent: %w", err)
		}
		out.Intent = toIntent(&pi)
	}
	return out, nil
}

func toIntent(pi *stripeapi.PaymentIntent) *ports.PaymentIntent {
	return &ports.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}
