package matchevent

import "context"

// Repository exposes event reads; writes go through the ledger.
type Repository interface {
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Event, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]Event, error)
}
