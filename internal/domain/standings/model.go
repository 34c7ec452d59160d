package standings

import (
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
)

// Row is one ranked team.
type Row struct {
	Position int
	Team     team.Team
	// HeadToHead is the goal differential against the other members of
	// the team's points cohort. Zero when the team has no cohort.
	HeadToHead   int
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
}

// Scorer is one entry of the top scorer list.
type Scorer struct {
	Player   player.Player
	TeamName string
}

// Table is the full standings output for a tournament.
type Table struct {
	TournamentID    string
	Teams           []Row
	TopScorers      []Scorer
	FinishedMatches int
	TotalMatches    int
}

// Leader returns the first ranked team, if any.
func (t Table) Leader() (Row, bool) {
	if len(t.Teams) == 0 {
		return Row{}, false
	}
	return t.Teams[0], true
}
