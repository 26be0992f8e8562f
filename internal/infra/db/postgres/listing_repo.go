package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/farmtech/farmtech-api/internal/domain/listings"
)

type ManpowerRepository struct {
	db *sql.DB
}

func NewManpowerRepository(db *sql.DB) *ManpowerRepository {
	return &ManpowerRepository{db: db}
}

func (r *ManpowerRepository) Save(ctx context.Context, m *domain.Manpower) error {
	const q = `
INSERT INTO manpower_listings
  (id, user_id, title, description, location_json, payment, duration, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  title=EXCLUDED.title, description=EXCLUDED.description, status=EXCLUDED.status;
`
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		m.ID, stringOrDash(m.UserID), m.Title, m.Description,
		jsonObject(m.Location), m.Payment, m.Duration, string(m.Status), createdAt)
	return err
}

func (r *ManpowerRepository) Active(ctx context.Context, limit int) ([]*domain.Manpower, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, user_id, title, description, location_json, payment, duration, status, created_at
FROM manpower_listings
WHERE status='active'
ORDER BY created_at DESC
LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Manpower
	for rows.Next() {
		var m domain.Manpower
		var location sql.NullString
		var created time.Time
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Description,
			&location, &m.Payment, &m.Duration, &m.Status, &created); err != nil {
			return nil, err
		}
		m.Location = scanObject(location)
		m.CreatedAt = created
		out = append(out, &m)
	}
	return out, rows.Err()
}

type EquipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Save(ctx context.Context, e *domain.Equipment) error {
	const q = `
INSERT INTO equipment_listings
  (id, user_id, equipment_name, description, daily_rate, requires_operator,
   location_json, images_json, availability_status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  equipment_name=EXCLUDED.equipment_name, description=EXCLUDED.description,
  daily_rate=EXCLUDED.daily_rate, availability_status=EXCLUDED.availability_status;
`
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		e.ID, stringOrDash(e.UserID), e.EquipmentName, e.Description, e.DailyRate, e.RequiresOperator,
		jsonObject(e.Location), jsonArray(e.ImageURLs), string(e.Status), createdAt)
	return err
}

func (r *EquipmentRepository) Available(ctx context.Context, limit int) ([]*domain.Equipment, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, user_id, equipment_name, description, daily_rate, requires_operator,
       location_json, images_json, availability_status, created_at
FROM equipment_listings
WHERE availability_status='available'
ORDER BY created_at DESC
LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		var location, images sql.NullString
		var created time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &e.EquipmentName, &e.Description, &e.DailyRate,
			&e.RequiresOperator, &location, &images, &e.Status, &created); err != nil {
			return nil, err
		}
		e.Location = scanObject(location)
		e.ImageURLs = scanArray(images)
		e.CreatedAt = created
		out = append(out, &e)
	}
	return out, rows.Err()
}
