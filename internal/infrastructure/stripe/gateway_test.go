package stripe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripeapi "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/form"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/pkg/config"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

const webhookSecret = "whsec_test_123"

// mockBackend responde las llamadas de la API sin red.
type mockBackend struct {
	handler func(method, path string, params stripeapi.ParamsContainer) ([]byte, error)
}

func (m *mockBackend) Call(method, path, key string, params stripeapi.ParamsContainer, v stripeapi.LastResponseSetter) error {
	data, err := m.handler(method, path, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (m *mockBackend) CallStreaming(method, path, key string, params stripeapi.ParamsContainer, v stripeapi.StreamingLastResponseSetter) error {
	return nil
}

func (m *mockBackend) CallRaw(method, path, key string, body *form.Values, params *stripeapi.Params, v stripeapi.LastResponseSetter) error {
	return nil
}

func (m *mockBackend) CallMultipart(method, path, key, boundary string, body *bytes.Buffer, params *stripeapi.Params, v stripeapi.LastResponseSetter) error {
	return nil
}

func (m *mockBackend) SetMaxNetworkRetries(maxNetworkRetries int64) {}

func newGateway(t *testing.T, handler func(method, path string, params stripeapi.ParamsContainer) ([]byte, error)) *Gateway {
	t.Helper()
	b := &mockBackend{handler: handler}
	g, err := NewGateway(config.StripeConfig{
		SecretKey:      "sk_test_123",
		PublishableKey: "pk_test_123",
		WebhookSecret:  webhookSecret,
	}, &stripeapi.Backends{API: b, Connect: b, Uploads: b}, logger.Nop())
	require.NoError(t, err)
	return g
}

// ── Construcción ──────────────────────────────────────────────────────────────

func TestNewGateway_ClaveInvalida(t *testing.T) {
	_, err := NewGateway(config.StripeConfig{}, nil, logger.Nop())
	assert.Error(t, err)
	_, err = NewGateway(config.StripeConfig{SecretKey: "pk_test_x"}, nil, logger.Nop())
	assert.Error(t, err)
}

// ── PaymentIntents ────────────────────────────────────────────────────────────

func TestCreateIntent(t *testing.T) {
	var got *stripeapi.PaymentIntentParams
	g := newGateway(t, func(method, path string, params stripeapi.ParamsContainer) ([]byte, error) {
		assert.Equal(t, "POST", method)
		assert.Equal(t, "/v1/payment_intents", path)
		got = params.(*stripeapi.PaymentIntentParams)
		return []byte(`{"id":"pi_1","client_secret":"pi_1_secret","amount":49950,"currency":"inr","status":"requires_payment_method","metadata":{"order_id":"o-1"}}`), nil
	})

	pi, err := g.CreateIntent(context.Background(), ports.CreateIntentInput{
		Amount:         49950,
		Currency:       "inr",
		ReceiptEmail:   "anita@test.in",
		Metadata:       map[string]string{"order_id": "o-1"},
		IdempotencyKey: "order-o-1-",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", pi.ID)
	assert.Equal(t, "pi_1_secret", pi.ClientSecret)
	assert.Equal(t, ports.IntentRequiresPaymentMethod, pi.Status)
	assert.Equal(t, "o-1", pi.Metadata["order_id"])

	require.NotNil(t, got)
	assert.Equal(t, int64(49950), *got.Amount)
	assert.Equal(t, "inr", *got.Currency)
	assert.Equal(t, "order-o-1-", *got.IdempotencyKey)
	assert.Equal(t, "o-1", got.Metadata["order_id"])
}

func TestCreateIntent_Error(t *testing.T) {
	g := newGateway(t, func(string, string, stripeapi.ParamsContainer) ([]byte, error) {
		return nil, errors.New("boom")
	})
	_, err := g.CreateIntent(context.Background(), ports.CreateIntentInput{Amount: 100, Currency: "inr"})
	assert.Error(t, err)
}

func TestRefund(t *testing.T) {
	g := newGateway(t, func(method, path string, params stripeapi.ParamsContainer) ([]byte, error) {
		assert.Equal(t, "/v1/refunds", path)
		assert.Equal(t, "pi_1", *params.(*stripeapi.RefundParams).PaymentIntent)
		return []byte(`{"id":"re_1","status":"succeeded"}`), nil
	})
	assert.NoError(t, g.Refund(context.Background(), "pi_1"))
}

// ── Webhook ───────────────────────────────────────────────────────────────────

func signed(t *testing.T, payload []byte, secret string) string {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return sp.Header
}

func TestParseWebhook(t *testing.T) {
	g := newGateway(t, nil)
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","object":"payment_intent","amount":49950,"status":"succeeded","metadata":{"order_id":"o-1"}}}}`)

	ev, err := g.ParseWebhook(payload, signed(t, payload, webhookSecret))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, ports.EventPaymentSucceeded, ev.Type)
	require.NotNil(t, ev.Intent)
	assert.Equal(t, "pi_1", ev.Intent.ID)
	assert.Equal(t, ports.IntentSucceeded, ev.Intent.Status)
	assert.Equal(t, "o-1", ev.Intent.Metadata["order_id"])
}

func TestParseWebhook_FirmaInvalida(t *testing.T) {
	g := newGateway(t, nil)
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{}}}`)

	_, err := g.ParseWebhook(payload, signed(t, payload, "whsec_otro"))
	assert.True(t, errors.Is(err, ports.ErrInvalidSignature))

	_, err = g.ParseWebhook(payload, "")
	assert.True(t, errors.Is(err, ports.ErrInvalidSignature))
}
