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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.vendor_id, p.category_id, p.name, p.slug, p.description, p.price, p.compare_at_price,
	p.stock, p.unit, p.images, p.status, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.VendorID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price,
		&p.CompareAtPrice, &p.Stock, &p.Unit, &p.Images, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, vendor_id, category_id, name, slug, description, price, compare_at_price,
			stock, unit, images, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.VendorID, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.CompareAtPrice,
		p.Stock, p.Unit, images, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: tienda o categoría inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDs carga varios productos; los inexistentes se omiten.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	return collectProducts(rows)
}

// Update actualiza los datos editables. El stock se maneja con Increment/DecrementStock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET category_id = $2, name = $3, slug = $4, description = $5, price = $6,
			compare_at_price = $7, unit = $8, images = $9, status = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.CompareAtPrice, p.Unit, images, p.Status, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List aplica el filtro y devuelve la página junto con el total.
func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, int, error) {
	var a argList
	from := ` FROM products p`
	if f.OnlyApproved {
		from += ` JOIN vendors v ON v.id = p.vendor_id`
		a.where = append(a.where, "v.status = 'approved'")
	}
	if f.CategoryID != "" {
		a.cond("p.category_id = %s", f.CategoryID)
	}
	if f.VendorID != "" {
		a.cond("p.vendor_id = %s", f.VendorID)
	}
	if f.Status != "" {
		a.cond("p.status = %s", f.Status)
	}
	if f.MinPrice != nil {
		a.cond("p.price >= %s", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		a.cond("p.price <= %s", *f.MaxPrice)
	}
	if f.Search != "" {
		ph := a.add("%" + f.Search + "%")
		a.where = append(a.where, "(p.name ILIKE "+ph+" OR p.description ILIKE "+ph+")")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+from+a.clause(), a.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	order := "p.created_at DESC"
	switch f.Sort {
	case "price_asc":
		order = "p.price ASC"
	case "price_desc":
		order = "p.price DESC"
	case "name":
		order = "p.name ASC"
	}
	query := `SELECT ` + productColumns + from + a.clause() + ` ORDER BY ` + order
	if f.Limit > 0 {
		query += ` LIMIT ` + a.add(f.Limit) + ` OFFSET ` + a.add(f.Offset)
	}
	rows, err := r.q.Query(ctx, query, a.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock descuenta de forma condicional: nunca deja stock negativo.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID string, qty int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`, productID, qty)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInsufficientStock
}

func (r *ProductRepo) IncrementStock(ctx context.Context, productID string, qty int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`, productID, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLowStock productos activos de la tienda con stock <= threshold, los más escasos primero.
func (r *ProductRepo) ListLowStock(ctx context.Context, vendorID string, threshold, limit int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products p
		WHERE p.vendor_id = $1 AND p.status = 'active' AND p.stock <= $2
		ORDER BY p.stock ASC, p.name LIMIT $3`, vendorID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepo) CountByVendor(ctx context.Context, vendorID string) (int, error) {
	var a argList
	if vendorID != "" {
		a.cond("vendor_id = %s", vendorID)
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+a.clause(), a.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
