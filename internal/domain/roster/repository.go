package roster

import (
	"context"

	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
)

// Repository stores the result of one roster import in a single
// transaction.
type Repository interface {
	Import(ctx context.Context, teams []team.Team, players []player.Player) error
}
