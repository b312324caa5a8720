package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcart "github.com/jhoicas/supermall-api/internal/application/cart"
	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/orders"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/infrastructure/memory"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

const (
	userID   = "a0000000-0000-4000-8000-000000000001"
	shopA    = "b0000000-0000-4000-8000-00000000000a"
	shopB    = "b0000000-0000-4000-8000-00000000000b"
	riceID   = "c0000000-0000-4000-8000-000000000001"
	gheeID   = "c0000000-0000-4000-8000-000000000002"
	shawlID  = "c0000000-0000-4000-8000-000000000003"
	oldJarID = "c0000000-0000-4000-8000-000000000004"
)

type env struct {
	uc       *appcart.CartUseCase
	products *memory.ProductRepository
	carts    *memory.CartStore
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	vendors := memory.NewVendorRepository(s)
	products := memory.NewProductRepository(s)

	require.NoError(t, users.Create(ctx, &entity.User{ID: userID, Email: "meera@test.in", Role: entity.RoleCustomer, Status: entity.UserStatusActive}))
	require.NoError(t, vendors.Create(ctx, &entity.Vendor{ID: shopA, OwnerID: "owner-a", Slug: "shop-a", Status: entity.VendorStatusApproved}))
	require.NoError(t, vendors.Create(ctx, &entity.Vendor{ID: shopB, OwnerID: "owner-b", Slug: "shop-b", Status: entity.VendorStatusApproved}))
	for _, p := range []*entity.Product{
		{ID: riceID, VendorID: shopA, Name: "Red Rice", Slug: "red-rice", Price: decimal.RequireFromString("90"), Stock: 5},
		{ID: gheeID, VendorID: shopA, Name: "Desi Ghee", Slug: "desi-ghee", Price: decimal.RequireFromString("550"), Stock: 3},
		{ID: shawlID, VendorID: shopB, Name: "Kullu Shawl", Slug: "kullu-shawl", Price: decimal.RequireFromString("1200"), Stock: 1},
		{ID: oldJarID, VendorID: shopB, Name: "Pickle Jar", Slug: "pickle-jar", Price: decimal.RequireFromString("200"), Stock: 4},
	} {
		p.Status = entity.ProductStatusActive
		require.NoError(t, products.Create(ctx, p))
	}

	pricing := orders.Pricing{ShippingFee: decimal.RequireFromString("40"), FreeShippingThreshold: decimal.RequireFromString("499")}
	creator := orders.NewCreateOrderUseCase(memory.NewTxRunner(s), products, vendors, users, nil, pricing, logger.Nop()).WithBackoff(0)
	carts := memory.NewCartStore()
	return &env{
		uc:       appcart.NewCartUseCase(carts, products, vendors, creator, logger.Nop()),
		products: products,
		carts:    carts,
	}
}

func TestAddItem_TotalesYFusion(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: riceID, Quantity: 2})
	require.NoError(t, err)
	c, err := e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: riceID, Quantity: 1})
	require.NoError(t, err)
	c, err = e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: gheeID, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, c.Items, 2)
	assert.Equal(t, 4, c.TotalItems)
	assert.True(t, c.Subtotal.Equal(decimal.RequireFromString("820")), c.Subtotal.String())

	// persistido entre peticiones
	again, err := e.uc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, again.TotalItems)
}

func TestAddItem_SuperaStock(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	_, err := e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: gheeID, Quantity: 2})
	require.NoError(t, err)
	_, err = e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: gheeID, Quantity: 2})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	c, err := e.uc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Quantity(gheeID), "la operación rechazada no se guarda")
}

func TestAddItem_ProductoInexistente(t *testing.T) {
	e := setup(t)
	_, err := e.uc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: "nada", Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateItem_CeroElimina(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	_, err := e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: riceID, Quantity: 2})
	require.NoError(t, err)
	c, err := e.uc.UpdateItem(ctx, userID, riceID, dto.UpdateCartItemRequest{Quantity: 0})
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal.IsZero())
}

func TestSaveForLaterYMoveToCart(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	_, err := e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: riceID, Quantity: 2})
	require.NoError(t, err)

	c, err := e.uc.SaveForLater(ctx, userID, riceID)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Len(t, c.Saved, 1)
	assert.Equal(t, 0, c.TotalItems)

	c, err = e.uc.MoveToCart(ctx, userID, riceID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Quantity(riceID))
	assert.Empty(t, c.Saved)
}

func TestGet_RefrescaPrecios(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	_, err := e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: riceID, Quantity: 2})
	require.NoError(t, err)

	p, err := e.products.GetByID(ctx, riceID)
	require.NoError(t, err)
	p.Price = decimal.RequireFromString("100")
	require.NoError(t, e.products.Update(ctx, p))

	c, err := e.uc.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, c.Subtotal.Equal(decimal.RequireFromString("200")))
}

func TestGet_DescartaProductosBorrados(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	_, err := e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: oldJarID, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, e.products.Delete(ctx, oldJarID))

	c, err := e.uc.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCheckout_UnPedidoPorTienda(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	for _, req := range []dto.AddCartItemRequest{
		{ProductID: riceID, Quantity: 2},
		{ProductID: shawlID, Quantity: 1},
		{ProductID: gheeID, Quantity: 1},
	} {
		_, err := e.uc.AddItem(ctx, userID, req)
		require.NoError(t, err)
	}

	resp, err := e.uc.Checkout(ctx, userID, dto.CheckoutRequest{ShippingAddress: "Village road 4, Kullu", PaymentMethod: entity.PaymentMethodCOD})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, shopA, resp.Orders[0].VendorID)
	assert.Len(t, resp.Orders[0].Items, 2)
	assert.True(t, resp.Orders[0].Subtotal.Equal(decimal.RequireFromString("730")))
	assert.Equal(t, shopB, resp.Orders[1].VendorID)

	c, err := e.uc.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCheckout_Parcial(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	_, err := e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: riceID, Quantity: 1})
	require.NoError(t, err)
	_, err = e.uc.AddItem(ctx, userID, dto.AddCartItemRequest{ProductID: shawlID, Quantity: 1})
	require.NoError(t, err)

	// otra compra se lleva el último chal antes del checkout
	require.NoError(t, e.products.DecrementStock(ctx, shawlID, 1))

	resp, err := e.uc.Checkout(ctx, userID, dto.CheckoutRequest{ShippingAddress: "Village road 4, Kullu"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	require.NotNil(t, resp)
	require.Len(t, resp.Orders, 1)

	c, err := e.uc.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, shawlID, c.Items[0].ProductID)
}

func TestCheckout_CarritoVacio(t *testing.T) {
	e := setup(t)
	_, err := e.uc.Checkout(context.Background(), userID, dto.CheckoutRequest{ShippingAddress: "x street 1"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
