package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, tournamentID, matchID string) (Match, bool, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]Match, error)
	// Create stores all matches or none of them.
	Create(ctx context.Context, items ...Match) error
	// UpdateStartTimes moves every given match in one transaction.
	UpdateStartTimes(ctx context.Context, tournamentID string, items []Match) error
}
