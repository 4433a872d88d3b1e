package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/usecase"
)

var ErrNotFound = errors.New("not found")

// MySQLCatalogRepo reads the tenant catalog: sellable units, modifier prices,
// weekly hours and the per-tenant engine configuration. The catalog service
// owns writes; this side only applies stock pushes.
type MySQLCatalogRepo struct{ db *sql.DB }

func NewMySQLCatalogRepo(db *sql.DB) *MySQLCatalogRepo { return &MySQLCatalogRepo{db: db} }

func (r *MySQLCatalogRepo) Unit(ctx context.Context, businessID, productID, variantID string) (domain.SellableUnit, error) {
	if variantID != "" {
		return r.variantUnit(ctx, businessID, productID, variantID)
	}

	row := r.db.QueryRowContext(ctx, `
SELECT price_cents, original_price_cents, stock, track_inventory, currency
FROM products WHERE business_id=? AND id=?`, businessID, productID)

	u := domain.SellableUnit{ProductID: productID}
	var orig sql.NullInt64
	if err := row.Scan(&u.PriceCents, &orig, &u.Stock, &u.TrackInventory, &u.Currency); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SellableUnit{}, ErrNotFound
		}
		return domain.SellableUnit{}, err
	}
	u.OriginalPriceCents = orig.Int64
	return u, nil
}

func (r *MySQLCatalogRepo) variantUnit(ctx context.Context, businessID, productID, variantID string) (domain.SellableUnit, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT v.price_cents, v.original_price_cents, v.stock, p.track_inventory, p.currency
FROM product_variants v
JOIN products p ON p.business_id = v.business_id AND p.id = v.product_id
WHERE v.business_id=? AND v.product_id=? AND v.id=?`, businessID, productID, variantID)

	u := domain.SellableUnit{ProductID: productID, VariantID: variantID}
	var orig sql.NullInt64
	if err := row.Scan(&u.PriceCents, &orig, &u.Stock, &u.TrackInventory, &u.Currency); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SellableUnit{}, ErrNotFound
		}
		return domain.SellableUnit{}, err
	}
	u.OriginalPriceCents = orig.Int64
	return u, nil
}

func (r *MySQLCatalogRepo) Modifiers(ctx context.Context, businessID, productID string, modifierIDs []string) ([]domain.Modifier, error) {
	if len(modifierIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(modifierIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(modifierIDs)+2)
	args = append(args, businessID, productID)
	for _, id := range modifierIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT id, price_cents FROM product_modifiers
WHERE business_id=? AND product_id=? AND id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]domain.Modifier, len(modifierIDs))
	for rows.Next() {
		var m domain.Modifier
		if err := rows.Scan(&m.ID, &m.PriceCents); err != nil {
			return nil, err
		}
		found[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve request order; an unknown id is a hard error, not a silent drop.
	out := make([]domain.Modifier, 0, len(modifierIDs))
	for _, id := range modifierIDs {
		m, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("modifier %q: %w", id, ErrNotFound)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MySQLCatalogRepo) Hours(ctx context.Context, businessID string) (domain.BusinessHours, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT weekday, open_minute, close_minute, closed
FROM business_hours WHERE business_id=?`, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make(domain.BusinessHours)
	for rows.Next() {
		var weekday int
		var dh domain.DayHours
		if err := rows.Scan(&weekday, &dh.OpenMinute, &dh.CloseMinute, &dh.Closed); err != nil {
			return nil, err
		}
		hours[time.Weekday(weekday)] = dh
	}
	return hours, rows.Err()
}

func (r *MySQLCatalogRepo) Tenant(ctx context.Context, businessID string) (domain.TenantConfig, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT currency, timezone, temporarily_closed, geo_delivery,
       base_delivery_fee_cents, minimum_order_cents,
       delivery_buffer_min, pickup_buffer_min
FROM businesses WHERE id=?`, businessID)

	cfg := domain.TenantConfig{BusinessID: businessID}
	if err := row.Scan(&cfg.Currency, &cfg.Timezone, &cfg.TemporarilyClosed, &cfg.GeoDelivery,
		&cfg.BaseDeliveryFeeCents, &cfg.MinimumOrderCents,
		&cfg.DeliveryBufferMin, &cfg.PickupBufferMin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TenantConfig{}, ErrNotFound
		}
		return domain.TenantConfig{}, err
	}
	return cfg, nil
}

// UpdateStock applies a stock figure pushed by the catalog collaborator.
// Affecting zero rows is not an error: the unit may not have synced yet.
func (r *MySQLCatalogRepo) UpdateStock(ctx context.Context, businessID, productID, variantID string, stock int) error {
	if variantID != "" {
		_, err := r.db.ExecContext(ctx, `
UPDATE product_variants SET stock=?, updated_at=NOW()
WHERE business_id=? AND product_id=? AND id=?`, stock, businessID, productID, variantID)
		return err
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE products SET stock=?, updated_at=NOW()
WHERE business_id=? AND id=?`, stock, businessID, productID)
	return err
}

var (
	_ usecase.CatalogRepo = (*MySQLCatalogRepo)(nil)
	_ usecase.StockWriter = (*MySQLCatalogRepo)(nil)
)
