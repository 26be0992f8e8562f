package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/farmtech/farmtech-api/internal/domain/inventory"
)

const defaultListLimit = 100

// Service implements inventory and marketplace use-cases.
type Service struct {
	Repo  domain.Repository
	Clock Clock
}

type Clock interface {
	Now() time.Time
}

// Command untuk add item
type AddItemCommand struct {
	UserID       string
	ItemName     string
	Quantity     float64
	Unit         string
	Action       string
	PricePerUnit float64
	ImageURLs    []string
}

func (s *Service) Add(ctx context.Context, cmd AddItemCommand) (*domain.Item, error) {
	it := &domain.Item{
		ID:           domain.ItemID(uuid.New().String()),
		UserID:       cmd.UserID,
		ItemName:     cmd.ItemName,
		Quantity:     cmd.Quantity,
		Unit:         cmd.Unit,
		Action:       domain.Action(cmd.Action),
		PricePerUnit: cmd.PricePerUnit,
		ImageURLs:    cmd.ImageURLs,
		CreatedAt:    s.Clock.Now().UTC(),
	}
	if err := s.Repo.Save(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// ByUser lists a user's inventory, newest first.
func (s *Service) ByUser(ctx context.Context, userID string) ([]*domain.Item, error) {
	return s.Repo.ByUser(ctx, userID, defaultListLimit)
}

// Marketplace lists items posted for buying or selling.
func (s *Service) Marketplace(ctx context.Context) ([]*domain.Item, error) {
	return s.Repo.Marketplace(ctx, defaultListLimit)
}
