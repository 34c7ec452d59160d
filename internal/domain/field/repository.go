package field

import "context"

// Repository describes field persistence needs from use cases.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Field, error)
	GetByID(ctx context.Context, tournamentID, fieldID string) (Field, bool, error)
	Create(ctx context.Context, item Field) error
	Delete(ctx context.Context, tournamentID, fieldID string) error
}
