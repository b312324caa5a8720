package payments_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/payments"
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/infrastructure/memory"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

const (
	customerID = "a0000000-0000-4000-8000-000000000001"
	orderID    = "e0000000-0000-4000-8000-000000000001"
	codOrderID = "e0000000-0000-4000-8000-000000000002"
	intentID   = "pi_test_123"
)

// ── Pasarela falsa ────────────────────────────────────────────────────────────

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateIntent(ctx context.Context, in ports.CreateIntentInput) (*ports.PaymentIntent, error) {
	args := m.Called(ctx, in)
	pi, _ := args.Get(0).(*ports.PaymentIntent)
	return pi, args.Error(1)
}

func (m *mockGateway) GetIntent(ctx context.Context, id string) (*ports.PaymentIntent, error) {
	args := m.Called(ctx, id)
	pi, _ := args.Get(0).(*ports.PaymentIntent)
	return pi, args.Error(1)
}

func (m *mockGateway) Refund(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGateway) ParseWebhook(payload []byte, sig string) (*ports.WebhookEvent, error) {
	args := m.Called(payload, sig)
	ev, _ := args.Get(0).(*ports.WebhookEvent)
	return ev, args.Error(1)
}

func (m *mockGateway) PublishableKey() string { return "pk_test_abc" }

// ── Fixture ───────────────────────────────────────────────────────────────────

type env struct {
	uc     *payments.PaymentUseCase
	gw     *mockGateway
	orders *memory.OrderRepository
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	orders := memory.NewOrderRepository(s)
	require.NoError(t, users.Create(ctx, &entity.User{ID: customerID, Email: "anita@test.in", Role: entity.RoleCustomer, Status: entity.UserStatusActive}))

	now := time.Now().UTC()
	for _, o := range []*entity.Order{
		{ID: orderID, OrderNumber: "ORDER-1700000000000-AAAAAA", PaymentMethod: entity.PaymentMethodCard},
		{ID: codOrderID, OrderNumber: "ORDER-1700000000001-BBBBBB", PaymentMethod: entity.PaymentMethodCOD},
	} {
		o.CustomerID = customerID
		o.VendorID = "shop-1"
		o.Subtotal = decimal.RequireFromString("459.50")
		o.ShippingFee = decimal.RequireFromString("40")
		o.Total = decimal.RequireFromString("499.50")
		o.Status = entity.OrderStatusPending
		o.PaymentStatus = entity.PaymentStatusPending
		o.CreatedAt = now
		require.NoError(t, orders.Create(ctx, o))
	}
	gw := &mockGateway{}
	return &env{
		uc:     payments.NewPaymentUseCase(gw, memory.NewIdempotencyStore(), orders, users, "inr", logger.Nop()),
		gw:     gw,
		orders: orders,
	}
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(49950), payments.MinorUnits(decimal.RequireFromString("499.50")))
	assert.Equal(t, int64(100), payments.MinorUnits(decimal.RequireFromString("1.004")))
}

// ── CreateIntent ──────────────────────────────────────────────────────────────

func TestCreateIntent(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.gw.On("CreateIntent", mock.Anything, mock.MatchedBy(func(in ports.CreateIntentInput) bool {
		return in.Amount == 49950 && in.Currency == "inr" && in.Metadata["order_id"] == orderID && in.ReceiptEmail == "anita@test.in"
	})).Return(&ports.PaymentIntent{ID: intentID, ClientSecret: "pi_test_123_secret", Amount: 49950, Currency: "inr", Status: ports.IntentRequiresPaymentMethod}, nil)

	resp, err := e.uc.CreateIntent(ctx, customerID, dto.CreatePaymentIntentRequest{OrderID: orderID})
	require.NoError(t, err)
	assert.Equal(t, "pi_test_123_secret", resp.ClientSecret)
	assert.Equal(t, "pk_test_abc", resp.PublishableKey)
	assert.True(t, resp.Amount.Equal(decimal.RequireFromString("499.50")))

	o, err := e.orders.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, intentID, o.PaymentIntentID)
	e.gw.AssertExpectations(t)
}

func TestCreateIntent_Rechazos(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.uc.CreateIntent(ctx, "otro-cliente", dto.CreatePaymentIntentRequest{OrderID: orderID})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = e.uc.CreateIntent(ctx, customerID, dto.CreatePaymentIntentRequest{OrderID: codOrderID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	require.NoError(t, e.orders.UpdateStatus(ctx, orderID, entity.OrderStatusPending, entity.OrderStatusCancelled))
	_, err = e.uc.CreateIntent(ctx, customerID, dto.CreatePaymentIntentRequest{OrderID: orderID})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	e.gw.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
}

func TestSinPasarela(t *testing.T) {
	uc := payments.NewPaymentUseCase(nil, memory.NewIdempotencyStore(), memory.NewOrderRepository(memory.NewStore()), nil, "", logger.Nop())
	_, err := uc.CreateIntent(context.Background(), customerID, dto.CreatePaymentIntentRequest{OrderID: orderID})
	assert.True(t, errors.Is(err, domain.ErrPaymentUnavailable))
}

// ── Confirm ───────────────────────────────────────────────────────────────────

func TestConfirm_ExitosoConfirmaElPedido(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	require.NoError(t, e.orders.UpdatePayment(ctx, orderID, entity.PaymentStatusPending, intentID))
	e.gw.On("GetIntent", mock.Anything, intentID).Return(&ports.PaymentIntent{ID: intentID, Amount: 49950, Status: ports.IntentSucceeded}, nil)

	resp, err := e.uc.Confirm(ctx, customerID, dto.ConfirmPaymentRequest{PaymentIntentID: intentID})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.Equal(t, entity.OrderStatusConfirmed, resp.OrderStatus)

	// confirmar dos veces no cambia nada
	resp, err = e.uc.Confirm(ctx, customerID, dto.ConfirmPaymentRequest{PaymentIntentID: intentID})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, resp.OrderStatus)
}

func TestConfirm_Fallido(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	require.NoError(t, e.orders.UpdatePayment(ctx, orderID, entity.PaymentStatusPending, intentID))
	e.gw.On("GetIntent", mock.Anything, intentID).Return(&ports.PaymentIntent{ID: intentID, Status: ports.IntentRequiresPaymentMethod}, nil)

	resp, err := e.uc.Confirm(ctx, customerID, dto.ConfirmPaymentRequest{PaymentIntentID: intentID})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, resp.PaymentStatus)
	assert.Equal(t, entity.OrderStatusPending, resp.OrderStatus)
}

// ── Webhook ───────────────────────────────────────────────────────────────────

func TestWebhook_IdempotentePorEvento(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)
	ev := &ports.WebhookEvent{ID: "evt_1", Type: ports.EventPaymentSucceeded, Intent: &ports.PaymentIntent{
		ID: intentID, Amount: 49950, Status: ports.IntentSucceeded, Metadata: map[string]string{"order_id": orderID},
	}}
	e.gw.On("ParseWebhook", payload, "sig").Return(ev, nil)

	require.NoError(t, e.uc.HandleWebhook(ctx, payload, "sig"))
	o, err := e.orders.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, o.IsPaid())
	assert.Equal(t, entity.OrderStatusConfirmed, o.Status)

	// la tienda avanza el pedido; un reenvío del mismo evento no lo toca
	require.NoError(t, e.orders.UpdateStatus(ctx, orderID, entity.OrderStatusConfirmed, entity.OrderStatusProcessing))
	require.NoError(t, e.uc.HandleWebhook(ctx, payload, "sig"))
	o, err = e.orders.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, o.Status)
}

func TestWebhook_FirmaInvalida(t *testing.T) {
	e := setup(t)
	e.gw.On("ParseWebhook", mock.Anything, "mala").Return(nil, ports.ErrInvalidSignature)
	err := e.uc.HandleWebhook(context.Background(), []byte(`{}`), "mala")
	assert.True(t, errors.Is(err, ports.ErrInvalidSignature))
}

func TestWebhook_PagoFallido(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	require.NoError(t, e.orders.UpdatePayment(ctx, orderID, entity.PaymentStatusPending, intentID))
	ev := &ports.WebhookEvent{ID: "evt_2", Type: ports.EventPaymentFailed, Intent: &ports.PaymentIntent{
		ID: intentID, Status: ports.IntentRequiresPaymentMethod,
	}}
	e.gw.On("ParseWebhook", mock.Anything, mock.Anything).Return(ev, nil)

	require.NoError(t, e.uc.HandleWebhook(ctx, []byte(`{}`), "sig"))
	o, err := e.orders.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, o.PaymentStatus)
}

func TestWebhook_EventoIgnorado(t *testing.T) {
	e := setup(t)
	e.gw.On("ParseWebhook", mock.Anything, mock.Anything).Return(&ports.WebhookEvent{ID: "evt_3", Type: "charge.refunded"}, nil)
	assert.NoError(t, e.uc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
}

// ── Refund ────────────────────────────────────────────────────────────────────

func TestRefund(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.uc.Refund(ctx, orderID)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin intent no hay reembolso")

	require.NoError(t, e.orders.UpdatePayment(ctx, orderID, entity.PaymentStatusPaid, intentID))
	e.gw.On("Refund", mock.Anything, intentID).Return(nil).Once()

	resp, err := e.uc.Refund(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, resp.PaymentStatus)

	_, err = e.uc.Refund(ctx, orderID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	e.gw.AssertExpectations(t)
}

func TestRefund_ElPedidoNoVuelveAPagado(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	require.NoError(t, e.orders.UpdatePayment(ctx, orderID, entity.PaymentStatusPaid, intentID))
	e.gw.On("Refund", mock.Anything, intentID).Return(nil).Once()
	_, err := e.uc.Refund(ctx, orderID)
	require.NoError(t, err)

	// el intent reembolsado sigue en succeeded
	e.gw.On("GetIntent", mock.Anything, intentID).Return(&ports.PaymentIntent{ID: intentID, Amount: 49950, Status: ports.IntentSucceeded}, nil)
	resp, err := e.uc.Confirm(ctx, customerID, dto.ConfirmPaymentRequest{PaymentIntentID: intentID})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, resp.PaymentStatus)

	ev := &ports.WebhookEvent{ID: "evt_9", Type: ports.EventPaymentFailed, Intent: &ports.PaymentIntent{
		ID: intentID, Status: ports.IntentCanceled, Metadata: map[string]string{"order_id": orderID},
	}}
	e.gw.On("ParseWebhook", mock.Anything, mock.Anything).Return(ev, nil)
	require.NoError(t, e.uc.HandleWebhook(ctx, []byte(`{}`), "sig"))

	o, err := e.orders.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, o.PaymentStatus)

	_, err = e.uc.Refund(ctx, orderID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}
