package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/farmtech/farmtech-api/internal/domain/transport"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

type fakeBookingRepo struct {
	saved []*domain.Booking
}

func (r *fakeBookingRepo) Save(_ context.Context, b *domain.Booking) error {
	r.saved = append(r.saved, b)
	return nil
}

func (r *fakeBookingRepo) Get(_ context.Context, id domain.BookingID) (*domain.Booking, error) {
	for _, b := range r.saved {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) ByFarmer(_ context.Context, farmerID string, _ int) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.saved {
		if b.FarmerID == farmerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func TestQuote(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		distanceKM float64
		wantKM     float64
		wantTotal  float64
	}{
		{"explicit distance", 100, 100, 300 + 100*15 + 100},
		{"short trip", 10, 10, 300 + 10*15 + 100},
		{"zero distance uses mock", 0, 50, 300 + 50*15 + 100},
		{"negative distance uses mock", -2, 50, 300 + 50*15 + 100},
	}

	svc := &Service{}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q := svc.Quote(tc.distanceKM)
			assert.Equal(t, tc.wantKM, q.DistanceKM)
			assert.Equal(t, 300.0, q.BasePrice)
			assert.Equal(t, 100.0, q.OtherFees)
			assert.Equal(t, tc.wantTotal, q.TotalPrice)
			assert.Equal(t, q.BasePrice+q.DistanceCost+q.OtherFees, q.TotalPrice)
		})
	}
}

func TestBook(t *testing.T) {
	t.Parallel()

	repo := &fakeBookingRepo{}
	svc := &Service{
		Repo:  repo,
		Clock: fixedClock{t: time.Date(2025, 7, 20, 8, 0, 0, 0, time.UTC)},
	}

	b, err := svc.Book(context.Background(), BookCommand{
		FarmerID:      "farmer-1",
		TransporterID: "transporter-9",
		PickupLocation: map[string]any{
			"lat": 18.52, "lon": 73.85,
		},
		DeliveryLocation: map[string]any{
			"lat": 19.07, "lon": 72.87,
		},
		DistanceKM:  150,
		VehicleType: "truck",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 300+150*15+100.0, b.CalculatedPrice)
	assert.Equal(t, time.Date(2025, 7, 20, 8, 0, 0, 0, time.UTC), b.CreatedAt)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, b, repo.saved[0])
}
