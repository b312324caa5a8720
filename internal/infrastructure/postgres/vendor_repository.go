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

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo tiendas sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador.
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

const vendorColumns = `id, owner_id, shop_name, slug, description, village, district, state, phone, email, logo_url, status, created_at, updated_at`

func scanVendor(row pgx.Row) (*entity.Vendor, error) {
	var v entity.Vendor
	err := row.Scan(&v.ID, &v.OwnerID, &v.ShopName, &v.Slug, &v.Description, &v.Village, &v.District,
		&v.State, &v.Phone, &v.Email, &v.LogoURL, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vendors (`+vendorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		v.ID, v.OwnerID, v.ShopName, v.Slug, v.Description, v.Village, v.District, v.State,
		v.Phone, v.Email, v.LogoURL, v.Status, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
}

func (r *VendorRepo) GetBySlug(ctx context.Context, slug string) (*entity.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE slug = $1`, slug)
}

func (r *VendorRepo) GetByOwner(ctx context.Context, ownerID string) (*entity.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE owner_id = $1`, ownerID)
}

func (r *VendorRepo) getOne(ctx context.Context, query, arg string) (*entity.Vendor, error) {
	v, err := scanVendor(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE vendors SET shop_name = $2, slug = $3, description = $4, village = $5, district = $6,
			state = $7, phone = $8, email = $9, logo_url = $10, updated_at = $11
		WHERE id = $1`,
		v.ID, v.ShopName, v.Slug, v.Description, v.Village, v.District, v.State, v.Phone, v.Email, v.LogoURL, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VendorRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE vendors SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update vendor status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VendorRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Vendor, error) {
	var a argList
	if status != "" {
		a.cond("status = %s", status)
	}
	query := `SELECT ` + vendorColumns + ` FROM vendors` + a.clause() +
		` ORDER BY shop_name LIMIT ` + a.add(limit) + ` OFFSET ` + a.add(offset)
	rows, err := r.q.Query(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *VendorRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var a argList
	if status != "" {
		a.cond("status = %s", status)
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM vendors`+a.clause(), a.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vendors: %w", err)
	}
	return n, nil
}

// Delete borra la tienda y sus productos (cascade). Con pedidos la FK lo impide → ErrConflict.
func (r *VendorRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la tienda tiene pedidos", domain.ErrConflict)
		}
		return fmt.Errorf("delete vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
