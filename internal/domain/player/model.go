package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrNameTaken = errors.New("player name already used in team")

// Player is a squad member whose counters are maintained by match events.
type Player struct {
	ID              string
	TournamentID    string
	TeamID          string
	Name            string
	Goals           int
	OwnGoals        int
	YellowCards     int
	RedCards        int
	SecondYellowRed bool
	IsAllowedToPlay bool
	CreatedAt       time.Time
}

// New returns an eligible player with zeroed counters.
func New(id, tournamentID, teamID, name string, createdAt time.Time) Player {
	return Player{
		ID:              id,
		TournamentID:    tournamentID,
		TeamID:          teamID,
		Name:            strings.TrimSpace(name),
		IsAllowedToPlay: true,
		CreatedAt:       createdAt,
	}
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.TournamentID == "" {
		return fmt.Errorf("player tournament id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if len([]rune(p.Name)) > 100 {
		return fmt.Errorf("player name must be at most 100 characters")
	}
	if p.Goals < 0 || p.OwnGoals < 0 || p.YellowCards < 0 || p.RedCards < 0 {
		return fmt.Errorf("player counters cannot be negative")
	}

	return nil
}
