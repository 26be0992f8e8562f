package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/farmtech/farmtech-api/internal/domain/inventory"
)

type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Save inserts an inventory item
func (r *InventoryRepository) Save(ctx context.Context, it *domain.Item) error {
	const q = `
INSERT INTO inventory_items
  (id, user_id, item_name, quantity, unit, action, price_per_unit, images_json, created_at)
VALUES (?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  quantity=VALUES(quantity), action=VALUES(action), price_per_unit=VALUES(price_per_unit);
`
	createdAt := it.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		it.ID, stringOrDash(it.UserID), it.ItemName, it.Quantity, it.Unit,
		string(it.Action), it.PricePerUnit, jsonArray(it.ImageURLs), createdAt)
	return err
}

// ByUser lists a user's items, newest first
func (r *InventoryRepository) ByUser(ctx context.Context, userID string, limit int) ([]*domain.Item, error) {
	const q = `
SELECT id, user_id, item_name, quantity, unit, action, price_per_unit, images_json, created_at
FROM inventory_items
WHERE user_id=?
ORDER BY created_at DESC
LIMIT ?;
`
	return r.list(ctx, q, userID, limitOrDefault(limit))
}

// Marketplace lists items posted to buy or sell
func (r *InventoryRepository) Marketplace(ctx context.Context, limit int) ([]*domain.Item, error) {
	const q = `
SELECT id, user_id, item_name, quantity, unit, action, price_per_unit, images_json, created_at
FROM inventory_items
WHERE action IN ('buy','sell')
ORDER BY created_at DESC
LIMIT ?;
`
	return r.list(ctx, q, limitOrDefault(limit))
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}

func (r *InventoryRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Item
	for rows.Next() {
		var it domain.Item
		var price sql.NullFloat64
		var images sql.NullString
		var created time.Time
		if err := rows.Scan(&it.ID, &it.UserID, &it.ItemName, &it.Quantity, &it.Unit,
			&it.Action, &price, &images, &created); err != nil {
			return nil, err
		}
		it.PricePerUnit = price.Float64
		it.ImageURLs = scanArray(images)
		it.CreatedAt = created
		out = append(out, &it)
	}
	return out, rows.Err()
}
