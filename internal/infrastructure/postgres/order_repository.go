package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository (orders + order_items).
// Create debe correr dentro de una tx para que cabecera y líneas queden juntas.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, customer_id, vendor_id, subtotal, shipping_fee, total, status,
	payment_status, payment_method, payment_intent_id, shipping_address, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.VendorID, &o.Subtotal, &o.ShippingFee, &o.Total,
		&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.PaymentIntentID, &o.ShippingAddress, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta cabecera y líneas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	updated := o.UpdatedAt
	if updated.IsZero() {
		updated = o.CreatedAt
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.OrderNumber, o.CustomerID, o.VendorID, o.Subtotal, o.ShippingFee, o.Total, o.Status,
		o.PaymentStatus, o.PaymentMethod, o.PaymentIntentID, o.ShippingAddress, o.Notes, o.CreatedAt, updated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		batch.Queue(`
			INSERT INTO order_items (id, order_id, product_id, product_name, unit_price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.OrderID, it.ProductID, it.ProductName, it.UnitPrice, it.Quantity, it.Subtotal)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *OrderRepo) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)
}

// GetByPaymentIntent busca el pedido asociado a un PaymentIntent.
func (r *OrderRepo) GetByPaymentIntent(ctx context.Context, intentID string) (*entity.Order, error) {
	if intentID == "" {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_intent_id = $1`, intentID)
}

func (r *OrderRepo) getOne(ctx context.Context, query string, arg any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List pedidos más recientes primero, con líneas cargadas.
func (r *OrderRepo) List(ctx context.Context, f entity.OrderFilter) ([]*entity.Order, int, error) {
	var a argList
	if f.CustomerID != "" {
		a.cond("customer_id = %s", f.CustomerID)
	}
	if f.VendorID != "" {
		a.cond("vendor_id = %s", f.VendorID)
	}
	if f.Status != "" {
		a.cond("status = %s", f.Status)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM orders`+a.clause(), a.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + a.clause() + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + a.add(f.Limit) + ` OFFSET ` + a.add(f.Offset)
	}
	rows, err := r.q.Query(ctx, query, a.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// loadItems carga las líneas de todos los pedidos en una sola consulta.
func (r *OrderRepo) loadItems(ctx context.Context, list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*entity.Order, len(list))
	for i, o := range list {
		ids[i] = o.ID
		byID[o.ID] = o
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, subtotal
		FROM order_items WHERE order_id = ANY($1::uuid[])
		ORDER BY product_name`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// UpdateStatus transición condicional: solo aplica si el estado actual sigue siendo from.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: el pedido ya no está en estado %s", domain.ErrConflict, from)
}

func (r *OrderRepo) UpdatePayment(ctx context.Context, id, paymentStatus, intentID string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET payment_status = $2, payment_intent_id = $3, updated_at = now()
		WHERE id = $1`, id, paymentStatus, intentID)
	if err != nil {
		return fmt.Errorf("update order payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
