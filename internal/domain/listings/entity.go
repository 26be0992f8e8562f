package listings

import "time"

// ListingID tipe untuk listings
type ListingID string

// ManpowerStatus enum
type ManpowerStatus string

const (
	ManpowerActive  ManpowerStatus = "active"
	ManpowerFilled  ManpowerStatus = "filled"
	ManpowerExpired ManpowerStatus = "expired"
)

// Aggregate Root: Manpower job listing
type Manpower struct {
	ID          ListingID      `json:"id"`
	UserID      string         `json:"user_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    map[string]any `json:"location"`
	Payment     float64        `json:"payment"`
	Duration    string         `json:"duration"`
	Status      ManpowerStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

// EquipmentStatus enum
type EquipmentStatus string

const (
	EquipmentAvailable EquipmentStatus = "available"
	EquipmentRented    EquipmentStatus = "rented"
)

// Aggregate Root: Equipment rental listing
type Equipment struct {
	ID               ListingID       `json:"id"`
	UserID           string          `json:"user_id"`
	EquipmentName    string          `json:"equipment_name"`
	Description      string          `json:"description"`
	DailyRate        float64         `json:"daily_rate"`
	RequiresOperator bool            `json:"requires_operator"`
	Location         map[string]any  `json:"location"`
	ImageURLs        []string        `json:"equipment_images"`
	Status           EquipmentStatus `json:"availability_status"`
	CreatedAt        time.Time       `json:"created_at"`
}
