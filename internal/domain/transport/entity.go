package transport

import "time"

// BookingID tipe untuk Booking
type BookingID string

// BookingStatus enum
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
)

// Aggregate Root: Transport booking
type Booking struct {
	ID               BookingID      `json:"id"`
	FarmerID         string         `json:"farmer_id"`
	TransporterID    string         `json:"transporter_id,omitempty"`
	PickupLocation   map[string]any `json:"pickup_location"`
	DeliveryLocation map[string]any `json:"delivery_location"`
	DistanceKM       float64        `json:"distance"`
	VehicleType      string         `json:"vehicle_type"`
	CalculatedPrice  float64        `json:"calculated_price"`
	Status           BookingStatus  `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
}

// PriceQuote value object
type PriceQuote struct {
	DistanceKM   float64 `json:"distance"`
	BasePrice    float64 `json:"base_price"`
	DistanceCost float64 `json:"distance_cost"`
	OtherFees    float64 `json:"other_fees"`
	TotalPrice   float64 `json:"total_price"`
}
