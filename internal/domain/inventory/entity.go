package inventory

import "time"

// ItemID tipe untuk Item
type ItemID string

// Action enum
type Action string

const (
	ActionBuy   Action = "buy"
	ActionSell  Action = "sell"
	ActionStore Action = "store"
)

// Aggregate Root: Inventory item
type Item struct {
	ID           ItemID    `json:"id"`
	UserID       string    `json:"user_id"`
	ItemName     string    `json:"item_name"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Action       Action    `json:"action"`
	PricePerUnit float64   `json:"price_per_unit,omitempty"`
	ImageURLs    []string  `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
}
