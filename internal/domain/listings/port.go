package listings

import "context"

// ManpowerRepository port
type ManpowerRepository interface {
	Save(ctx context.Context, m *Manpower) error
	Active(ctx context.Context, limit int) ([]*Manpower, error)
}

// EquipmentRepository port
type EquipmentRepository interface {
	Save(ctx context.Context, e *Equipment) error
	Available(ctx context.Context, limit int) ([]*Equipment, error)
}
