package weather

import "context"

// Provider port (interface untuk external weather lookup)
type Provider interface {
	Current(ctx context.Context, lat, lon float64) (*Report, error)
}
