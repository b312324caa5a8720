// Package cart casos de uso del carrito persistido por usuario.
package cart

import (
	"context"
	"fmt"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/orders"
	"github.com/jhoicas/supermall-api/internal/domain"
	domaincart "github.com/jhoicas/supermall-api/internal/domain/cart"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

// OrderPlacer crea un pedido de una tienda (CreateOrderUseCase).
type OrderPlacer interface {
	Place(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*entity.Order, error)
}

// CartUseCase carga el carrito del store, aplica la operación del reductor y lo guarda.
type CartUseCase struct {
	store       repository.CartStore
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
	placer      OrderPlacer
	log         *logger.Logger
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(
	store repository.CartStore,
	productRepo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	placer OrderPlacer,
	log *logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		store:       store,
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		placer:      placer,
		log:         log.Component("cart"),
	}
}

// Get devuelve el carrito con precios actualizados desde el catálogo.
func (uc *CartUseCase) Get(ctx context.Context, userID string) (*domaincart.Cart, error) {
	c, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	changed, err := uc.refresh(ctx, c)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := uc.store.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("cart: guardar: %w", err)
		}
	}
	return c, nil
}

// AddItem agrega unidades de un producto. La cantidad total no puede superar el stock.
func (uc *CartUseCase) AddItem(ctx context.Context, userID string, in dto.AddCartItemRequest) (*domaincart.Cart, error) {
	if in.Quantity <= 0 {
		return nil, domaincart.ErrInvalidQuantity
	}
	p, err := uc.purchasable(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, userID, func(c *domaincart.Cart) error {
		if c.Quantity(p.ID)+in.Quantity > p.Stock {
			return fmt.Errorf("%w: %s (disponible %d)", domain.ErrInsufficientStock, p.Name, p.Stock)
		}
		return c.Add(itemFor(p), in.Quantity)
	})
}

// UpdateItem fija la cantidad de una línea; 0 la elimina.
func (uc *CartUseCase) UpdateItem(ctx context.Context, userID, productID string, in dto.UpdateCartItemRequest) (*domaincart.Cart, error) {
	if in.Quantity > 0 {
		p, err := uc.purchasable(ctx, productID)
		if err != nil {
			return nil, err
		}
		if in.Quantity > p.Stock {
			return nil, fmt.Errorf("%w: %s (disponible %d)", domain.ErrInsufficientStock, p.Name, p.Stock)
		}
	}
	return uc.mutate(ctx, userID, func(c *domaincart.Cart) error {
		return c.UpdateQuantity(productID, in.Quantity)
	})
}

// RemoveItem quita una línea.
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, productID string) (*domaincart.Cart, error) {
	return uc.mutate(ctx, userID, func(c *domaincart.Cart) error {
		c.Remove(productID)
		return nil
	})
}

// SaveForLater mueve una línea a guardados.
func (uc *CartUseCase) SaveForLater(ctx context.Context, userID, productID string) (*domaincart.Cart, error) {
	return uc.mutate(ctx, userID, func(c *domaincart.Cart) error {
		return c.SaveForLater(productID)
	})
}

// MoveToCart devuelve un guardado al carrito, validando stock de la cantidad resultante.
func (uc *CartUseCase) MoveToCart(ctx context.Context, userID, productID string) (*domaincart.Cart, error) {
	p, err := uc.purchasable(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, userID, func(c *domaincart.Cart) error {
		if err := c.MoveToCart(productID); err != nil {
			return err
		}
		if c.Quantity(productID) > p.Stock {
			return fmt.Errorf("%w: %s (disponible %d)", domain.ErrInsufficientStock, p.Name, p.Stock)
		}
		c.Reprice(productID, p.Price)
		return nil
	})
}

// Clear vacía el carrito (los guardados se conservan).
func (uc *CartUseCase) Clear(ctx context.Context, userID string) (*domaincart.Cart, error) {
	return uc.mutate(ctx, userID, func(c *domaincart.Cart) error {
		c.Clear()
		return nil
	})
}

// Checkout crea un pedido por tienda con las líneas del carrito y quita del carrito
// las líneas de cada tienda cuyo pedido se creó. Si una tienda falla, los pedidos ya
// creados se conservan y el error se devuelve junto con ellos.
func (uc *CartUseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	c, err := uc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}

	vendorIDs, groups := c.ByVendor()
	resp := &dto.CheckoutResponse{Orders: []dto.OrderResponse{}}
	var placeErr error
	for _, vendorID := range vendorIDs {
		req := dto.CreateOrderRequest{
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
			Notes:           in.Notes,
		}
		for _, it := range groups[vendorID] {
			req.Items = append(req.Items, dto.OrderItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		o, err := uc.placer.Place(ctx, userID, req)
		if err != nil {
			placeErr = err
			break
		}
		c.RemoveVendor(vendorID)
		resp.Orders = append(resp.Orders, *orders.ToOrderResponse(o))
	}

	if len(resp.Orders) > 0 {
		if err := uc.store.Save(ctx, c); err != nil {
			uc.log.Error().Err(err).Str("user_id", userID).Msg("no se pudo guardar el carrito tras el checkout")
		}
	}
	if placeErr != nil {
		if len(resp.Orders) > 0 {
			uc.log.Warn().Err(placeErr).Str("user_id", userID).Int("created", len(resp.Orders)).Msg("checkout parcial")
			return resp, placeErr
		}
		return nil, placeErr
	}
	return resp, nil
}

func (uc *CartUseCase) load(ctx context.Context, userID string) (*domaincart.Cart, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	c, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart: cargar: %w", err)
	}
	return c, nil
}

func (uc *CartUseCase) mutate(ctx context.Context, userID string, op func(*domaincart.Cart) error) (*domaincart.Cart, error) {
	c, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := op(c); err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: guardar: %w", err)
	}
	return c, nil
}

// refresh actualiza precios y descarta productos que ya no existen o no se venden.
func (uc *CartUseCase) refresh(ctx context.Context, c *domaincart.Cart) (bool, error) {
	ids := make([]string, 0, len(c.Items)+len(c.Saved))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	for _, it := range c.Saved {
		ids = append(ids, it.ProductID)
	}
	if len(ids) == 0 {
		return false, nil
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return false, fmt.Errorf("cart: obtener productos: %w", err)
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	changed := false
	for _, it := range append(append([]domaincart.Item{}, c.Items...), c.Saved...) {
		p := byID[it.ProductID]
		if p == nil {
			c.Discard(it.ProductID)
			changed = true
			continue
		}
		if !p.IsActive() && c.Quantity(p.ID) > 0 {
			// deja de estar a la venta: pasa a guardados
			_ = c.SaveForLater(p.ID)
			changed = true
		}
		if !p.Price.Equal(it.UnitPrice) {
			c.Reprice(p.ID, p.Price)
			changed = true
		}
	}
	return changed, nil
}

func (uc *CartUseCase) purchasable(ctx context.Context, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("cart: obtener producto: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	if !p.IsActive() {
		return nil, fmt.Errorf("%w: el producto %s no está disponible", domain.ErrInvalidInput, p.Name)
	}
	v, err := uc.vendorRepo.GetByID(ctx, p.VendorID)
	if err != nil {
		return nil, fmt.Errorf("cart: obtener tienda: %w", err)
	}
	if v == nil || !v.IsApproved() {
		return nil, domain.ErrVendorNotApproved
	}
	return p, nil
}

func itemFor(p *entity.Product) domaincart.Item {
	return domaincart.Item{
		ProductID: p.ID,
		VendorID:  p.VendorID,
		Name:      p.Name,
		ImageURL:  p.MainImage(),
		UnitPrice: p.Price,
	}
}
