package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/usecase"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/internal/infrastructure/memory"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

const (
	adminID    = "a0000000-0000-4000-8000-0000000000ad"
	ownerID    = "a0000000-0000-4000-8000-000000000001"
	otherOwner = "a0000000-0000-4000-8000-000000000002"
	buyerID    = "a0000000-0000-4000-8000-000000000003"
)

// ── Mocks ─────────────────────────────────────────────────────────────────────

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) OrderPlaced(ctx context.Context, o *entity.Order, u *entity.User) error {
	return m.Called(ctx, o, u).Error(0)
}

func (m *mockNotifier) OrderStatusChanged(ctx context.Context, o *entity.Order, u *entity.User) error {
	return m.Called(ctx, o, u).Error(0)
}

func (m *mockNotifier) VendorStatusChanged(ctx context.Context, v *entity.Vendor, u *entity.User) error {
	return m.Called(ctx, v, u).Error(0)
}

type mockLLM struct{ mock.Mock }

func (m *mockLLM) SuggestProductListing(ctx context.Context, name, description string, slugs []string) (*dto.ProductSuggestionDTO, error) {
	args := m.Called(ctx, name, description, slugs)
	out, _ := args.Get(0).(*dto.ProductSuggestionDTO)
	return out, args.Error(1)
}

// faultyTx envuelve el TxRunner en memoria y puede hacer fallar la escritura de movimientos.
type faultyTx struct {
	inner         *memory.TxRunner
	failMovements bool
}

type failingMovements struct {
	repository.StockMovementRepository
}

func (failingMovements) Create(context.Context, *entity.StockMovement) error {
	return errors.New("disco lleno")
}

func (f *faultyTx) RunOrder(ctx context.Context, fn func(repository.OrderRepository, repository.ProductRepository, repository.StockMovementRepository) error) error {
	return f.inner.RunOrder(ctx, func(o repository.OrderRepository, p repository.ProductRepository, m repository.StockMovementRepository) error {
		if f.failMovements {
			m = failingMovements{m}
		}
		return fn(o, p, m)
	})
}

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	store      *memory.Store
	users      *memory.UserRepository
	vendors    *usecase.VendorUseCase
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
	customers  *usecase.CustomerUseCase
	notifier   *mockNotifier
	tx         *faultyTx
	categoryID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	for _, u := range []*entity.User{
		{ID: adminID, Email: "admin@test.in", Name: "Admin", Role: entity.RoleAdmin},
		{ID: ownerID, Email: "kavya@test.in", Name: "Kavya", Role: entity.RoleVendor},
		{ID: otherOwner, Email: "ravi@test.in", Name: "Ravi", Role: entity.RoleVendor},
		{ID: buyerID, Email: "neha@test.in", Name: "Neha", Role: entity.RoleCustomer},
	} {
		u.Status = entity.UserStatusActive
		require.NoError(t, users.Create(ctx, u))
	}
	n := &mockNotifier{}
	catRepo := memory.NewCategoryRepository(s)
	vendorRepo := memory.NewVendorRepository(s)
	tx := &faultyTx{inner: memory.NewTxRunner(s)}
	f := &fixture{
		store:      s,
		users:      users,
		vendors:    usecase.NewVendorUseCase(vendorRepo, users, n, logger.Nop()),
		products:   usecase.NewProductUseCase(memory.NewProductRepository(s), vendorRepo, catRepo, memory.NewStockMovementRepository(s), tx),
		categories: usecase.NewCategoryUseCase(catRepo),
		customers:  usecase.NewCustomerUseCase(memory.NewAnalyticsRepository(s), users, logger.Nop()),
		notifier:   n,
		tx:         tx,
	}
	c, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Handloom Textiles"})
	require.NoError(t, err)
	f.categoryID = c.ID
	return f
}

// approvedShop registra y aprueba la tienda de owner y devuelve el actor vendedor.
func (f *fixture) approvedShop(t *testing.T, owner, name string) dto.Actor {
	t.Helper()
	ctx := context.Background()
	v, err := f.vendors.Apply(ctx, owner, dto.CreateVendorRequest{ShopName: name, Village: "Pochampally", State: "Telangana"})
	require.NoError(t, err)
	f.notifier.On("VendorStatusChanged", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	_, err = f.vendors.UpdateStatus(ctx, v.ID, dto.UpdateVendorStatusRequest{Status: entity.VendorStatusApproved})
	require.NoError(t, err)
	return dto.Actor{UserID: owner, Role: entity.RoleVendor, VendorID: v.ID}
}

var admin = dto.Actor{UserID: adminID, Role: entity.RoleAdmin}

// ── Categorías ────────────────────────────────────────────────────────────────

func TestCategory_SlugYDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.categories.Get(ctx, "handloom-textiles")
	require.NoError(t, err)
	assert.Equal(t, f.categoryID, got.ID)

	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Handloom   textiles!"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "!!!"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCategory_DeleteConProductos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	_, err := f.products.Create(ctx, shop, dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Ikat Saree", Price: decimal.RequireFromString("2400"), Stock: 2})
	require.NoError(t, err)

	err = f.categories.Delete(ctx, f.categoryID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// ── Tiendas ───────────────────────────────────────────────────────────────────

func TestVendor_ApplyUnaPorUsuario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, err := f.vendors.Apply(ctx, ownerID, dto.CreateVendorRequest{ShopName: "Kavya Weaves"})
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusPending, v.Status)
	assert.False(t, v.IsApproved)
	assert.Equal(t, "kavya-weaves", v.Slug)
	assert.Equal(t, "kavya@test.in", v.Email)

	_, err = f.vendors.Apply(ctx, ownerID, dto.CreateVendorRequest{ShopName: "Otra"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = f.vendors.Apply(ctx, buyerID, dto.CreateVendorRequest{ShopName: "Neha Store"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestVendor_SlugRepetidoLlevaSufijo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.vendors.Apply(ctx, ownerID, dto.CreateVendorRequest{ShopName: "Village Crafts"})
	require.NoError(t, err)
	b, err := f.vendors.Apply(ctx, otherOwner, dto.CreateVendorRequest{ShopName: "Village Crafts"})
	require.NoError(t, err)
	assert.NotEqual(t, a.Slug, b.Slug)
	assert.Contains(t, b.Slug, "village-crafts-")
}

func TestVendor_CambioDeEstadoSeReflejaEnListado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	public := dto.Actor{}

	v, err := f.vendors.Apply(ctx, ownerID, dto.CreateVendorRequest{ShopName: "Kavya Weaves"})
	require.NoError(t, err)

	list, err := f.vendors.List(ctx, public, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "pendiente no aparece en el listado público")

	f.notifier.On("VendorStatusChanged", mock.Anything, mock.MatchedBy(func(x *entity.Vendor) bool {
		return x.ID == v.ID
	}), mock.MatchedBy(func(u *entity.User) bool { return u.ID == ownerID })).Return(nil)

	_, err = f.vendors.UpdateStatus(ctx, v.ID, dto.UpdateVendorStatusRequest{Status: entity.VendorStatusApproved})
	require.NoError(t, err)
	list, err = f.vendors.List(ctx, public, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].IsApproved)
	assert.Equal(t, 1, list.Page.Total)

	_, err = f.vendors.UpdateStatus(ctx, v.ID, dto.UpdateVendorStatusRequest{Status: entity.VendorStatusSuspended})
	require.NoError(t, err)
	list, err = f.vendors.List(ctx, public, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	// el admin sigue viéndola filtrando por estado
	list, err = f.vendors.List(ctx, admin, entity.VendorStatusSuspended, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	f.notifier.AssertNumberOfCalls(t, "VendorStatusChanged", 2)
}

func TestVendor_GetNoAprobadaSoloDuenoYAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v, err := f.vendors.Apply(ctx, ownerID, dto.CreateVendorRequest{ShopName: "Kavya Weaves"})
	require.NoError(t, err)

	_, err = f.vendors.Get(ctx, dto.Actor{UserID: buyerID, Role: entity.RoleCustomer}, v.Slug)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	got, err := f.vendors.Get(ctx, dto.Actor{UserID: ownerID, Role: entity.RoleVendor}, v.Slug)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)

	_, err = f.vendors.Get(ctx, admin, v.ID)
	require.NoError(t, err)
}

func TestVendor_UpdateSoloDueno(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	desc := "Telar manual de Pochampally"

	_, err := f.vendors.Update(ctx, dto.Actor{UserID: otherOwner, Role: entity.RoleVendor}, shop.VendorID, dto.UpdateVendorRequest{Description: &desc})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	got, err := f.vendors.Update(ctx, shop, shop.VendorID, dto.UpdateVendorRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, got.Description)
	assert.Equal(t, entity.VendorStatusApproved, got.Status)
}

func TestVendor_EstadoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.vendors.UpdateStatus(context.Background(), "x", dto.UpdateVendorStatusRequest{Status: "closed"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ── Productos ─────────────────────────────────────────────────────────────────

func TestProduct_CreateRequiereTiendaAprobada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v, err := f.vendors.Apply(ctx, ownerID, dto.CreateVendorRequest{ShopName: "Kavya Weaves"})
	require.NoError(t, err)
	pending := dto.Actor{UserID: ownerID, Role: entity.RoleVendor, VendorID: v.ID}

	_, err = f.products.Create(ctx, pending, dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Ikat Saree", Price: decimal.RequireFromString("2400")})
	assert.True(t, errors.Is(err, domain.ErrVendorNotApproved))
}

func TestProduct_ValidacionesDePrecioEImagen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	lower := decimal.RequireFromString("100")

	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"precio cero", dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Saree", Price: decimal.Zero}},
		{"compare_at menor", dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Saree", Price: decimal.RequireFromString("200"), CompareAtPrice: &lower}},
		{"imagen relativa", dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Saree", Price: decimal.RequireFromString("200"), Images: []string{"/img/a.png"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.products.Create(ctx, shop, tc.in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%v", err)
		})
	}

	_, err := f.products.Create(ctx, shop, dto.CreateProductRequest{CategoryID: "d0000000-0000-4000-8000-000000000999", Name: "Saree", Price: decimal.RequireFromString("200")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProduct_MiniaturaCloudinary(t *testing.T) {
	f := newFixture(t)
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	p, err := f.products.Create(context.Background(), shop, dto.CreateProductRequest{
		CategoryID: f.categoryID,
		Name:       "Ikat Dupatta",
		Price:      decimal.RequireFromString("850"),
		Stock:      4,
		Images:     []string{"https://res.cloudinary.com/supermall/image/upload/v1/dupatta.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/supermall/image/upload/c_fill,w_400,h_400,q_auto,f_auto/v1/dupatta.jpg", p.Thumbnail)
	assert.True(t, p.InStock)
	assert.Equal(t, "piece", p.Unit)
}

func TestProduct_HomonimoEnLaMismaTienda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	in := dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Cotton Towel", Price: decimal.RequireFromString("150")}
	a, err := f.products.Create(ctx, shop, in)
	require.NoError(t, err)
	b, err := f.products.Create(ctx, shop, in)
	require.NoError(t, err)
	assert.Equal(t, "cotton-towel", a.Slug)
	assert.NotEqual(t, a.Slug, b.Slug)
}

func TestProduct_ListadoPublicoSoloTiendasAprobadas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	for _, price := range []string{"300", "900", "1500"} {
		_, err := f.products.Create(ctx, shop, dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Towel " + price, Price: decimal.RequireFromString(price), Stock: 1})
		require.NoError(t, err)
	}

	list, err := f.products.List(ctx, dto.ProductListQuery{MinPrice: "500", Sort: "price_desc"})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Total)
	assert.True(t, list.Items[0].Price.Equal(decimal.RequireFromString("1500")))

	_, err = f.products.List(ctx, dto.ProductListQuery{MinPrice: "abc"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = f.products.List(ctx, dto.ProductListQuery{Sort: "random"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// al suspender la tienda sus productos desaparecen del catálogo público
	_, err = f.vendors.UpdateStatus(ctx, shop.VendorID, dto.UpdateVendorStatusRequest{Status: entity.VendorStatusSuspended})
	require.NoError(t, err)
	list, err = f.products.List(ctx, dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	mine, err := f.products.ListMine(ctx, shop, dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Len(t, mine.Items, 3)
}

func TestProduct_InactivoNoVisibleAlPublico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	p, err := f.products.Create(ctx, shop, dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Mat", Price: decimal.RequireFromString("250")})
	require.NoError(t, err)

	inactive := entity.ProductStatusInactive
	_, err = f.products.Update(ctx, shop, p.ID, dto.UpdateProductRequest{Status: &inactive})
	require.NoError(t, err)

	_, err = f.products.Get(ctx, dto.Actor{}, p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.products.Get(ctx, shop, p.ID)
	require.NoError(t, err)
}

func TestProduct_UpdateYDeleteDeOtraTienda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	other := f.approvedShop(t, otherOwner, "Ravi Pottery")
	p, err := f.products.Create(ctx, shop, dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Mat", Price: decimal.RequireFromString("250")})
	require.NoError(t, err)

	price := decimal.RequireFromString("10")
	_, err = f.products.Update(ctx, other, p.ID, dto.UpdateProductRequest{Price: &price})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.True(t, errors.Is(f.products.Delete(ctx, other, p.ID), domain.ErrForbidden))

	require.NoError(t, f.products.Delete(ctx, admin, p.ID))
	_, err = f.products.Get(ctx, admin, p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProduct_AjusteDeStockRegistraMovimientos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	p, err := f.products.Create(ctx, shop, dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Mat", Price: decimal.RequireFromString("250"), Stock: 3})
	require.NoError(t, err)

	got, err := f.products.AdjustStock(ctx, shop, p.ID, dto.AdjustStockRequest{Delta: 5, Reason: entity.StockReasonRestock})
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock)

	_, err = f.products.AdjustStock(ctx, shop, p.ID, dto.AdjustStockRequest{Delta: -20})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	got, err = f.products.AdjustStock(ctx, shop, p.ID, dto.AdjustStockRequest{Delta: -8})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.False(t, got.InStock)

	moves, err := f.products.ListMovements(ctx, shop, p.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, moves, 3)
	sum := 0
	for _, m := range moves {
		sum += m.Delta
	}
	assert.Equal(t, 0, sum, "los movimientos explican el stock actual")
}

func TestProduct_StockSinMovimientoNoSePersiste(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shop := f.approvedShop(t, ownerID, "Kavya Weaves")
	p, err := f.products.Create(ctx, shop, dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Rug", Price: decimal.RequireFromString("900"), Stock: 4})
	require.NoError(t, err)

	f.tx.failMovements = true
	_, err = f.products.AdjustStock(ctx, shop, p.ID, dto.AdjustStockRequest{Delta: 6})
	require.Error(t, err)
	_, err = f.products.Create(ctx, shop, dto.CreateProductRequest{CategoryID: f.categoryID, Name: "Durrie", Price: decimal.RequireFromString("700"), Stock: 2})
	require.Error(t, err, "el movimiento inicial fallido no se ignora")
	f.tx.failMovements = false

	got, err := f.products.Get(ctx, shop, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stock)

	list, err := f.products.ListMine(ctx, shop, dto.ProductListQuery{})
	require.NoError(t, err)
	for _, it := range list.Items {
		assert.NotEqual(t, "Durrie", it.Name)
	}
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func TestCustomer_SuspenderYReactivar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.customers.UpdateStatus(ctx, buyerID, dto.UpdateUserStatusRequest{Status: entity.UserStatusSuspended})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusSuspended, u.Status)

	stored, err := f.users.GetByID(ctx, buyerID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive())

	_, err = f.customers.UpdateStatus(ctx, adminID, dto.UpdateUserStatusRequest{Status: entity.UserStatusSuspended})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	list, err := f.customers.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, buyerID, list.Items[0].ID)
	assert.Equal(t, 0, list.Items[0].OrderCount)
}

// ── Asistente IA ──────────────────────────────────────────────────────────────

func TestAI_MapeaSlugACategoria(t *testing.T) {
	f := newFixture(t)
	llm := &mockLLM{}
	llm.On("SuggestProductListing", mock.Anything, "Ikat saree", "", []string{"handloom-textiles"}).
		Return(&dto.ProductSuggestionDTO{SuggestedCategory: "handloom-textiles", Tags: []string{"ikat"}, ConfidenceScore: 0.9}, nil)

	uc := usecase.NewAIUseCase(llm, memory.NewCategoryRepository(f.store))
	out, err := uc.SuggestListing(context.Background(), dto.ProductSuggestionRequest{Name: "Ikat saree"})
	require.NoError(t, err)
	assert.Equal(t, f.categoryID, out.CategoryID)
	llm.AssertExpectations(t)
}

func TestAI_SlugDesconocidoSeDescarta(t *testing.T) {
	f := newFixture(t)
	llm := &mockLLM{}
	llm.On("SuggestProductListing", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&dto.ProductSuggestionDTO{SuggestedCategory: "electronics"}, nil)

	uc := usecase.NewAIUseCase(llm, memory.NewCategoryRepository(f.store))
	out, err := uc.SuggestListing(context.Background(), dto.ProductSuggestionRequest{Name: "Radio"})
	require.NoError(t, err)
	assert.Empty(t, out.SuggestedCategory)
	assert.Empty(t, out.CategoryID)
	assert.NotNil(t, out.Tags)
}

func TestAI_ErrorDelProveedor(t *testing.T) {
	f := newFixture(t)
	llm := &mockLLM{}
	llm.On("SuggestProductListing", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout"))

	uc := usecase.NewAIUseCase(llm, memory.NewCategoryRepository(f.store))
	_, err := uc.SuggestListing(context.Background(), dto.ProductSuggestionRequest{Name: "Radio"})
	assert.Error(t, err)
}
