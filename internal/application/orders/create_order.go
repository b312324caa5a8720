package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/order"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

// MaxNumberAttempts intentos de asignar un número de pedido único antes de devolver conflicto.
const MaxNumberAttempts = 3

// DefaultRetryBackoff espera fija entre intentos.
const DefaultRetryBackoff = 100 * time.Millisecond

// CreateOrderUseCase crea un pedido de una tienda y descuenta stock en la misma transacción.
type CreateOrderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
	userRepo    repository.UserRepository
	notifier    ports.Notifier
	pricing     Pricing
	newNumber   order.NumberGenerator
	backoff     time.Duration
	log         *logger.Logger
}

// NewCreateOrderUseCase construye el caso de uso con el generador de números por defecto.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	userRepo repository.UserRepository,
	notifier ports.Notifier,
	pricing Pricing,
	log *logger.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		pricing:     pricing,
		newNumber:   order.NewNumber,
		backoff:     DefaultRetryBackoff,
		log:         log.Component("orders"),
	}
}

// WithNumberGenerator reemplaza el generador de números (tests).
func (uc *CreateOrderUseCase) WithNumberGenerator(g order.NumberGenerator) *CreateOrderUseCase {
	uc.newNumber = g
	return uc
}

// WithBackoff cambia la espera entre intentos.
func (uc *CreateOrderUseCase) WithBackoff(d time.Duration) *CreateOrderUseCase {
	if d >= 0 {
		uc.backoff = d
	}
	return uc
}

// Create valida el pedido, calcula totales y lo persiste.
//
// Cada intento corre en su propia transacción: insertar pedido, descontar stock y
// registrar movimientos. Si el número generado ya existe se espera el backoff y se
// reintenta con otro número; tras MaxNumberAttempts choques devuelve domain.ErrConflict.
// Cualquier otro error (ej: stock insuficiente) no se reintenta.
func (uc *CreateOrderUseCase) Create(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	o, err := uc.Place(ctx, customerID, in)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// Place igual que Create pero devuelve la entidad (checkout del carrito).
func (uc *CreateOrderUseCase) Place(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*entity.Order, error) {
	if customerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene productos", domain.ErrInvalidInput)
	}
	address := strings.TrimSpace(in.ShippingAddress)
	if address == "" {
		return nil, fmt.Errorf("%w: dirección de envío obligatoria", domain.ErrInvalidInput)
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodCard
	}
	if method != entity.PaymentMethodCard && method != entity.PaymentMethodCOD {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, method)
	}

	customer, err := uc.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("orders: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrUserNotFound
	}
	if !customer.IsActive() {
		return nil, domain.ErrForbidden
	}

	// Fusionar líneas repetidas conservando el orden de llegada.
	qtyByProduct := make(map[string]int)
	var productIDs []string
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser mayor que cero", domain.ErrInvalidInput)
		}
		if _, ok := qtyByProduct[it.ProductID]; !ok {
			productIDs = append(productIDs, it.ProductID)
		}
		qtyByProduct[it.ProductID] += it.Quantity
	}

	// Validar productos y precios (fuera de la tx, solo lectura)
	products, err := uc.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("orders: obtener productos: %w", err)
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	vendorID := ""
	items := make([]entity.OrderItem, 0, len(productIDs))
	subtotal := decimal.Zero
	for _, id := range productIDs {
		p := byID[id]
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		if !p.IsActive() {
			return nil, fmt.Errorf("%w: el producto %s no está disponible", domain.ErrInvalidInput, p.Name)
		}
		if vendorID == "" {
			vendorID = p.VendorID
		} else if p.VendorID != vendorID {
			return nil, fmt.Errorf("%w: un pedido solo puede tener productos de una tienda", domain.ErrInvalidInput)
		}
		qty := qtyByProduct[id]
		if qty > p.Stock {
			return nil, fmt.Errorf("%w: %s (disponible %d)", domain.ErrInsufficientStock, p.Name, p.Stock)
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, entity.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    qty,
			Subtotal:    lineTotal,
		})
	}

	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("orders: obtener tienda: %w", err)
	}
	if vendor == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, vendorID)
	}
	if !vendor.IsApproved() {
		return nil, domain.ErrVendorNotApproved
	}

	shipping := uc.pricing.Shipping(subtotal)
	base := entity.Order{
		CustomerID:      customerID,
		VendorID:        vendorID,
		Subtotal:        subtotal,
		ShippingFee:     shipping,
		Total:           subtotal.Add(shipping),
		Status:          entity.OrderStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		PaymentMethod:   method,
		ShippingAddress: address,
		Notes:           strings.TrimSpace(in.Notes),
	}

	var created *entity.Order
	for attempt := 1; attempt <= MaxNumberAttempts; attempt++ {
		o := uc.buildOrder(base, items)
		err := uc.txRunner.RunOrder(ctx, func(
			orderRepo repository.OrderRepository,
			productRepo repository.ProductRepository,
			movementRepo repository.StockMovementRepository,
		) error {
			// El pedido va primero: un número duplicado corta antes de tocar stock.
			if err := orderRepo.Create(ctx, o); err != nil {
				return err
			}
			for _, it := range o.Items {
				if err := productRepo.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
					if errors.Is(err, domain.ErrInsufficientStock) {
						return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, it.ProductName)
					}
					return err
				}
				if err := movementRepo.Create(ctx, &entity.StockMovement{
					ID:        uuid.New().String(),
					ProductID: it.ProductID,
					Delta:     -it.Quantity,
					Reason:    entity.StockReasonOrder,
					Reference: o.ID,
					UserID:    customerID,
					CreatedAt: o.CreatedAt,
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			created = o
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		uc.log.Warn().
			Str("order_number", o.OrderNumber).
			Int("attempt", attempt).
			Msg("número de pedido duplicado, reintentando")
		if attempt == MaxNumberAttempts {
			break
		}
		if err := sleepCtx(ctx, uc.backoff); err != nil {
			return nil, err
		}
	}
	if created == nil {
		return nil, fmt.Errorf("%w: no se pudo asignar un número de pedido único tras %d intentos",
			domain.ErrConflict, MaxNumberAttempts)
	}

	uc.log.Info().
		Str("order_id", created.ID).
		Str("order_number", created.OrderNumber).
		Str("vendor_id", created.VendorID).
		Str("total", created.Total.StringFixed(2)).
		Msg("pedido creado")

	if uc.notifier != nil {
		if err := uc.notifier.OrderPlaced(ctx, created, customer); err != nil {
			uc.log.Warn().Err(err).Str("order_id", created.ID).Msg("no se pudo enviar el correo del pedido")
		}
	}
	return created, nil
}

// buildOrder arma un pedido nuevo (ID, número, líneas) a partir de la plantilla.
func (uc *CreateOrderUseCase) buildOrder(base entity.Order, items []entity.OrderItem) *entity.Order {
	now := time.Now().UTC()
	o := base
	o.ID = uuid.New().String()
	o.OrderNumber = uc.newNumber(now)
	o.CreatedAt = now
	o.UpdatedAt = now
	o.Items = make([]entity.OrderItem, len(items))
	for i, it := range items {
		it.ID = uuid.New().String()
		it.OrderID = o.ID
		o.Items[i] = it
	}
	return &o
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
