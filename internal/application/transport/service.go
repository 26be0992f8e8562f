package transport

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/farmtech/farmtech-api/internal/domain/transport"
)

// Pricing constants per the platform's published formula:
// final price = base + distance * per-km rate + toll/permit fees.
const (
	basePrice = 300.0
	perKMRate = 15.0
	// mock toll/permit fees until route lookup is integrated
	defaultOtherFees = 100.0
	// mock distance; production should use a routing API
	defaultDistanceKM = 50.0
)

// Service implements transport pricing and booking use-cases.
type Service struct {
	Repo  domain.Repository
	Clock Clock
}

type Clock interface {
	Now() time.Time
}

// Quote calculates the transport price for a trip. A non-positive
// distance falls back to the mock distance.
func (s *Service) Quote(distanceKM float64) domain.PriceQuote {
	if distanceKM <= 0 {
		distanceKM = defaultDistanceKM
	}
	distanceCost := distanceKM * perKMRate
	return domain.PriceQuote{
		DistanceKM:   distanceKM,
		BasePrice:    basePrice,
		DistanceCost: distanceCost,
		OtherFees:    defaultOtherFees,
		TotalPrice:   basePrice + distanceCost + defaultOtherFees,
	}
}

// Command untuk booking
type BookCommand struct {
	FarmerID         string
	TransporterID    string
	PickupLocation   map[string]any
	DeliveryLocation map[string]any
	DistanceKM       float64
	VehicleType      string
}

// Book persists a pending booking priced by the same formula as Quote.
func (s *Service) Book(ctx context.Context, cmd BookCommand) (*domain.Booking, error) {
	q := s.Quote(cmd.DistanceKM)
	b := &domain.Booking{
		ID:               domain.BookingID(uuid.New().String()),
		FarmerID:         cmd.FarmerID,
		TransporterID:    cmd.TransporterID,
		PickupLocation:   cmd.PickupLocation,
		DeliveryLocation: cmd.DeliveryLocation,
		DistanceKM:       q.DistanceKM,
		VehicleType:      cmd.VehicleType,
		CalculatedPrice:  q.TotalPrice,
		Status:           domain.BookingPending,
		CreatedAt:        s.Clock.Now().UTC(),
	}
	if err := s.Repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
