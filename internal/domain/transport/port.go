package transport

import "context"

// Repository port
type Repository interface {
	Save(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id BookingID) (*Booking, error)
	ByFarmer(ctx context.Context, farmerID string, limit int) ([]*Booking, error)
}
