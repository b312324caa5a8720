package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/orders"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/infrastructure/memory"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

var (
	customerActor = dto.Actor{UserID: customerID, Role: entity.RoleCustomer}
	vendorActor   = dto.Actor{UserID: ownerID, Role: entity.RoleVendor, VendorID: vendorID}
	adminActor    = dto.Actor{UserID: "admin", Role: entity.RoleAdmin}
)

func (f *fixture) lifecycle(n *mockNotifier) *orders.OrderUseCase {
	if n == nil {
		return orders.NewOrderUseCase(f.orders, f.users, f.tx, nil, logger.Nop())
	}
	return orders.NewOrderUseCase(f.orders, f.users, f.tx, n, logger.Nop())
}

func (f *fixture) place(t *testing.T, qty int, method string) *dto.OrderResponse {
	t.Helper()
	req := request(dto.OrderItemRequest{ProductID: teaID, Quantity: qty})
	req.PaymentMethod = method
	resp, err := f.useCase(nil).Create(context.Background(), customerID, req)
	require.NoError(t, err)
	return resp
}

func TestUpdateStatus_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	o := f.place(t, 1, entity.PaymentMethodCOD)
	n := &mockNotifier{}
	n.On("OrderStatusChanged", o.ID, mock.Anything).Return(nil)
	uc := f.lifecycle(n)

	for _, next := range []string{
		entity.OrderStatusConfirmed,
		entity.OrderStatusProcessing,
		entity.OrderStatusShipped,
		entity.OrderStatusDelivered,
	} {
		resp, err := uc.UpdateStatus(context.Background(), vendorActor, o.ID, dto.UpdateOrderStatusRequest{Status: next})
		require.NoError(t, err, next)
		assert.Equal(t, next, resp.Status)
	}

	got, err := f.orders.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, got.Status)
	assert.Equal(t, entity.PaymentStatusPaid, got.PaymentStatus, "contra entrega queda pagado al entregar")
	n.AssertNumberOfCalls(t, "OrderStatusChanged", 4)
}

func TestUpdateStatus_TransicionInvalida(t *testing.T) {
	f := newFixture(t)
	o := f.place(t, 1, entity.PaymentMethodCard)
	_, err := f.lifecycle(nil).UpdateStatus(context.Background(), adminActor, o.ID,
		dto.UpdateOrderStatusRequest{Status: entity.OrderStatusDelivered})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestUpdateStatus_ClienteNoPuede(t *testing.T) {
	f := newFixture(t)
	o := f.place(t, 1, entity.PaymentMethodCard)
	_, err := f.lifecycle(nil).UpdateStatus(context.Background(), customerActor, o.ID,
		dto.UpdateOrderStatusRequest{Status: entity.OrderStatusConfirmed})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestUpdateStatus_OtraTiendaNoVe(t *testing.T) {
	f := newFixture(t)
	o := f.place(t, 1, entity.PaymentMethodCard)
	other := dto.Actor{UserID: "x", Role: entity.RoleVendor, VendorID: pendingVendorID}
	_, err := f.lifecycle(nil).UpdateStatus(context.Background(), other, o.ID,
		dto.UpdateOrderStatusRequest{Status: entity.OrderStatusConfirmed})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCancel_RepondeStockYRegistraMovimiento(t *testing.T) {
	f := newFixture(t)
	o := f.place(t, 3, entity.PaymentMethodCard)
	require.Equal(t, 7, f.stock(t, teaID))

	resp, err := f.lifecycle(nil).Cancel(context.Background(), customerActor, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)
	assert.Empty(t, resp.NextStatuses)
	assert.Equal(t, 10, f.stock(t, teaID))

	movs, err := memory.NewStockMovementRepository(f.store).ListByProduct(context.Background(), teaID, 10, 0)
	require.NoError(t, err)
	var deltas []int
	for _, m := range movs {
		deltas = append(deltas, m.Delta)
	}
	assert.ElementsMatch(t, []int{-3, 3}, deltas)
}

func TestCancel_ProductoBorradoNoBloquea(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.place(t, 2, entity.PaymentMethodCOD)
	require.NoError(t, f.products.Delete(ctx, teaID))

	resp, err := f.lifecycle(nil).Cancel(ctx, customerActor, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)

	movs, err := memory.NewStockMovementRepository(f.store).ListByProduct(ctx, teaID, 10, 0)
	require.NoError(t, err)
	for _, m := range movs {
		assert.NotEqual(t, entity.StockReasonCancel, m.Reason, "sin producto no se registra devolución")
	}
}

func TestCancel_SoloAntesDePreparar(t *testing.T) {
	f := newFixture(t)
	o := f.place(t, 1, entity.PaymentMethodCard)
	uc := f.lifecycle(nil)
	ctx := context.Background()
	_, err := uc.UpdateStatus(ctx, vendorActor, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusConfirmed})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, vendorActor, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusProcessing})
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, customerActor, o.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	assert.Equal(t, 9, f.stock(t, teaID))
}

func TestCancel_DosVecesNoRepondeDoble(t *testing.T) {
	f := newFixture(t)
	o := f.place(t, 2, entity.PaymentMethodCard)
	uc := f.lifecycle(nil)

	_, err := uc.Cancel(context.Background(), customerActor, o.ID)
	require.NoError(t, err)
	_, err = uc.Cancel(context.Background(), customerActor, o.ID)
	require.Error(t, err)
	assert.Equal(t, 10, f.stock(t, teaID))
}

func TestList_AlcancePorRol(t *testing.T) {
	f := newFixture(t)
	f.place(t, 1, entity.PaymentMethodCard)
	f.place(t, 1, entity.PaymentMethodCOD)
	uc := f.lifecycle(nil)
	ctx := context.Background()

	// el fixture ya trae un pedido entregado del cliente
	mine, err := uc.List(ctx, customerActor, dto.OrderListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, mine.Page.Total)
	assert.Equal(t, 20, mine.Page.Limit)

	stranger := dto.Actor{UserID: "otro-cliente", Role: entity.RoleCustomer}
	none, err := uc.List(ctx, stranger, dto.OrderListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Page.Total)

	shop, err := uc.List(ctx, vendorActor, dto.OrderListQuery{Status: entity.OrderStatusPending})
	require.NoError(t, err)
	assert.Equal(t, 2, shop.Page.Total)

	_, err = uc.List(ctx, dto.Actor{UserID: ownerID, Role: entity.RoleVendor}, dto.OrderListQuery{})
	assert.True(t, errors.Is(err, domain.ErrVendorNotApproved))

	_, err = uc.List(ctx, adminActor, dto.OrderListQuery{Status: "perdido"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestGetByNumber(t *testing.T) {
	f := newFixture(t)
	o := f.place(t, 1, entity.PaymentMethodCard)
	uc := f.lifecycle(nil)

	got, err := uc.GetByNumber(context.Background(), customerActor, o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = uc.GetByNumber(context.Background(), customerActor, "ORDER-123")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.GetByNumber(context.Background(), customerActor, "ORDER-1700000000009-QQQQQQQQQ")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
