package ledger

import (
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
)

// MatchState is everything the ledger needs to evaluate one operation:
// the match, both teams, the current event log and every player the
// operation may touch.
type MatchState struct {
	Match   match.Match
	Home    team.Team
	Away    team.Team
	Events  []matchevent.Event
	Players map[string]player.Player
}

func (s MatchState) clone() MatchState {
	out := s
	out.Events = append([]matchevent.Event(nil), s.Events...)
	out.Players = make(map[string]player.Player, len(s.Players))
	for id, p := range s.Players {
		out.Players[id] = p
	}
	return out
}

func (s MatchState) findEvent(eventID string) (matchevent.Event, int, bool) {
	for i, e := range s.Events {
		if e.ID == eventID {
			return e, i, true
		}
	}
	return matchevent.Event{}, -1, false
}

func (s *MatchState) recomputeScore() {
	s.Match.HomeScore, s.Match.AwayScore = matchevent.Tally(s.Match.HomeTeamID, s.Match.AwayTeamID, s.Events)
}

// Changeset lists every row an operation must persist. Storage adapters
// commit a changeset in a single transaction.
type Changeset struct {
	Match          match.Match
	Teams          []team.Team
	Players        []player.Player
	InsertEvents   []matchevent.Event
	DeleteEventIDs []string
}

// Empty reports whether the changeset carries nothing beyond the match row.
func (c Changeset) Empty() bool {
	return len(c.Teams) == 0 && len(c.Players) == 0 && len(c.InsertEvents) == 0 && len(c.DeleteEventIDs) == 0
}

func diff(before, after MatchState, touched map[string]struct{}) Changeset {
	out := Changeset{Match: after.Match}
	if before.Home != after.Home {
		out.Teams = append(out.Teams, after.Home)
	}
	if before.Away != after.Away {
		out.Teams = append(out.Teams, after.Away)
	}
	for id := range touched {
		p, ok := after.Players[id]
		if !ok {
			continue
		}
		if prev, existed := before.Players[id]; existed && prev == p {
			continue
		}
		out.Players = append(out.Players, p)
	}
	return out
}
