package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/farmtech/farmtech-api/internal/domain/transport"
)

type TransportRepository struct {
	db *sql.DB
}

func NewTransportRepository(db *sql.DB) *TransportRepository {
	return &TransportRepository{db: db}
}

// Save inserts a booking
func (r *TransportRepository) Save(ctx context.Context, b *domain.Booking) error {
	const q = `
INSERT INTO transport_bookings
  (id, farmer_id, transporter_id, pickup_json, delivery_json, distance_km,
   vehicle_type, calculated_price, status, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  transporter_id=VALUES(transporter_id), status=VALUES(status);
`
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		b.ID, stringOrDash(b.FarmerID), b.TransporterID,
		jsonObject(b.PickupLocation), jsonObject(b.DeliveryLocation), b.DistanceKM,
		b.VehicleType, b.CalculatedPrice, string(b.Status), createdAt)
	return err
}

// Get by ID
func (r *TransportRepository) Get(ctx context.Context, id domain.BookingID) (*domain.Booking, error) {
	const q = `
SELECT id, farmer_id, transporter_id, pickup_json, delivery_json, distance_km,
       vehicle_type, calculated_price, status, created_at
FROM transport_bookings
WHERE id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, id)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return b, err
}

// ByFarmer lists a farmer's bookings, newest first
func (r *TransportRepository) ByFarmer(ctx context.Context, farmerID string, limit int) ([]*domain.Booking, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, farmer_id, transporter_id, pickup_json, delivery_json, distance_km,
       vehicle_type, calculated_price, status, created_at
FROM transport_bookings
WHERE farmer_id=?
ORDER BY created_at DESC
LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, farmerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBooking(scan func(...any) error) (*domain.Booking, error) {
	var b domain.Booking
	var transporter, pickup, delivery sql.NullString
	var created time.Time
	if err := scan(&b.ID, &b.FarmerID, &transporter, &pickup, &delivery, &b.DistanceKM,
		&b.VehicleType, &b.CalculatedPrice, &b.Status, &created); err != nil {
		return nil, err
	}
	b.TransporterID = transporter.String
	b.PickupLocation = scanObject(pickup)
	b.DeliveryLocation = scanObject(delivery)
	b.CreatedAt = created
	return &b, nil
}
