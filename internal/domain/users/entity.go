package users

import "time"

// UserID tipe untuk User
type UserID string

// UserType enum (a profile can hold several)
type UserType string

const (
	TypeFarmer          UserType = "farmer"
	TypeWorker          UserType = "worker"
	TypeEquipmentRenter UserType = "equipment_renter"
	TypeTransporter     UserType = "transporter"
)

// Aggregate Root: User profile
type User struct {
	ID          UserID         `json:"id"`
	PhoneNumber string         `json:"phone_number"`
	Name        string         `json:"name"`
	Gender      string         `json:"gender"`
	DateOfBirth string         `json:"date_of_birth"`
	UserTypes   []string       `json:"user_types"`
	Location    map[string]any `json:"location,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	Verified    bool           `json:"verified"`
}

// OTPChallenge is a short-lived one-time code tied to a phone number.
type OTPChallenge struct {
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"otp"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c *OTPChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
