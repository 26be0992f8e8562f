package inventory

import "context"

// Repository port
type Repository interface {
	Save(ctx context.Context, it *Item) error
	ByUser(ctx context.Context, userID string, limit int) ([]*Item, error)
	Marketplace(ctx context.Context, limit int) ([]*Item, error)
}
