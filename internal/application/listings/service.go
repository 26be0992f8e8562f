package listings

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/farmtech/farmtech-api/internal/domain/listings"
)

const defaultListLimit = 50

// Service implements marketplace listing use-cases for labor and equipment.
type Service struct {
	Manpower  domain.ManpowerRepository
	Equipment domain.EquipmentRepository
	Clock     Clock
}

type Clock interface {
	Now() time.Time
}

// Command untuk manpower listing
type CreateManpowerCommand struct {
	UserID      string
	Title       string
	Description string
	Location    map[string]any
	Payment     float64
	Duration    string
}

func (s *Service) CreateManpower(ctx context.Context, cmd CreateManpowerCommand) (*domain.Manpower, error) {
	m := &domain.Manpower{
		ID:          domain.ListingID(uuid.New().String()),
		UserID:      cmd.UserID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Location:    cmd.Location,
		Payment:     cmd.Payment,
		Duration:    cmd.Duration,
		Status:      domain.ManpowerActive,
		CreatedAt:   s.Clock.Now().UTC(),
	}
	if err := s.Manpower.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ActiveManpower lists open job postings, newest first.
func (s *Service) ActiveManpower(ctx context.Context) ([]*domain.Manpower, error) {
	return s.Manpower.Active(ctx, defaultListLimit)
}

// Command untuk equipment listing
type CreateEquipmentCommand struct {
	UserID           string
	EquipmentName    string
	Description      string
	DailyRate        float64
	RequiresOperator bool
	Location         map[string]any
	ImageURLs        []string
}

func (s *Service) CreateEquipment(ctx context.Context, cmd CreateEquipmentCommand) (*domain.Equipment, error) {
	e := &domain.Equipment{
		ID:               domain.ListingID(uuid.New().String()),
		UserID:           cmd.UserID,
		EquipmentName:    cmd.EquipmentName,
		Description:      cmd.Description,
		DailyRate:        cmd.DailyRate,
		RequiresOperator: cmd.RequiresOperator,
		Location:         cmd.Location,
		ImageURLs:        cmd.ImageURLs,
		Status:           domain.EquipmentAvailable,
		CreatedAt:        s.Clock.Now().UTC(),
	}
	if err := s.Equipment.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// AvailableEquipment lists rentable equipment, newest first.
func (s *Service) AvailableEquipment(ctx context.Context) ([]*domain.Equipment, error) {
	return s.Equipment.Available(ctx, defaultListLimit)
}
