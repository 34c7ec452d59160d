package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	GetBySlug(ctx context.Context, slug string) (Tournament, bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Tournament, error)
	Create(ctx context.Context, item Tournament) error
	Update(ctx context.Context, item Tournament) error
}
