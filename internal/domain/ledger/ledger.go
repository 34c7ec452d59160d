package ledger

import (
	"fmt"

	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/cockroachdb/errors"
)

const (
	PointsWin  = 3
	PointsDraw = 1
)

// ApplyEvent records e against the match. Nothing in the returned
// changeset is produced when a rule refuses the event.
func ApplyEvent(state MatchState, e matchevent.Event) (Changeset, error) {
	if err := e.Validate(); err != nil {
		return Changeset{}, err
	}
	if e.MatchID != state.Match.ID {
		return Changeset{}, errors.Wrapf(ErrEventMatchMismatch, "event match=%s state match=%s", e.MatchID, state.Match.ID)
	}
	if !state.Match.Involves(e.TeamID) {
		return Changeset{}, errors.Wrapf(ErrTeamNotInMatch, "team=%s match=%s", e.TeamID, state.Match.ID)
	}

	touched := make(map[string]struct{}, 2)
	if e.PlayerID != "" {
		p, ok := state.Players[e.PlayerID]
		if !ok {
			return Changeset{}, errors.Wrapf(ErrPlayerNotFound, "player=%s", e.PlayerID)
		}
		if p.TeamID != e.TeamID {
			return Changeset{}, errors.Wrapf(ErrPlayerNotInTeam, "player=%s team=%s", p.ID, e.TeamID)
		}
		if e.Type.IsGoal() && !p.IsAllowedToPlay {
			return Changeset{}, errors.Wrapf(ErrSuspendedPlayer, "player=%s", p.ID)
		}
		touched[p.ID] = struct{}{}
	}
	if err := checkSubstitute(state, e); err != nil {
		return Changeset{}, err
	}

	working := state.clone()
	wasFinished := working.Match.IsFinished
	if wasFinished {
		working = reopen(working)
	}

	if p, ok := working.Players[e.PlayerID]; ok && e.PlayerID != "" {
		increment(&p, e.Type)
		p.RefreshEligibility()
		working.Players[p.ID] = p
	}
	working.Events = append(working.Events, e)
	working.recomputeScore()

	if wasFinished {
		working = finish(working)
	}

	out := diff(state, working, touched)
	out.InsertEvents = []matchevent.Event{e}
	return out, nil
}

// RemoveEvent withdraws an event and reverses exactly what ApplyEvent did.
func RemoveEvent(state MatchState, eventID string) (Changeset, error) {
	e, idx, ok := state.findEvent(eventID)
	if !ok {
		return Changeset{}, errors.Wrapf(ErrEventNotFound, "event=%s match=%s", eventID, state.Match.ID)
	}

	working := state.clone()
	wasFinished := working.Match.IsFinished
	if wasFinished {
		working = reopen(working)
	}

	touched := make(map[string]struct{}, 1)
	if p, ok := working.Players[e.PlayerID]; ok && e.PlayerID != "" {
		decrement(&p, e.Type)
		p.RefreshEligibility()
		working.Players[p.ID] = p
		touched[p.ID] = struct{}{}
	}
	working.Events = append(working.Events[:idx:idx], working.Events[idx+1:]...)
	working.recomputeScore()

	if wasFinished {
		working = finish(working)
	}

	out := diff(state, working, touched)
	out.DeleteEventIDs = []string{e.ID}
	return out, nil
}

// Finish closes the match and awards points. The boolean is false when the
// match was already finished and nothing changed.
func Finish(state MatchState) (Changeset, bool) {
	if state.Match.IsFinished {
		return Changeset{Match: state.Match}, false
	}
	working := finish(state.clone())
	return diff(state, working, nil), true
}

// Reopen reverses the points a finished match awarded and clears its
// result. The boolean is false when the match was not finished.
func Reopen(state MatchState) (Changeset, bool) {
	if !state.Match.IsFinished {
		return Changeset{Match: state.Match}, false
	}
	working := reopen(state.clone())
	return diff(state, working, nil), true
}

// Score derives the scoreline from the event log.
func Score(m match.Match, events []matchevent.Event) (home, away int) {
	return matchevent.Tally(m.HomeTeamID, m.AwayTeamID, events)
}

func finish(s MatchState) MatchState {
	if s.Match.IsFinished {
		return s
	}
	s.recomputeScore()

	homePts, awayPts := points(s.Match.Result())
	s.Home.TournamentPoints += homePts
	s.Away.TournamentPoints += awayPts
	s.Home.MatchPoints += s.Match.HomeScore
	s.Away.MatchPoints += s.Match.AwayScore
	s.Match.IsFinished = true
	return s
}

func reopen(s MatchState) MatchState {
	if !s.Match.IsFinished {
		return s
	}

	homePts, awayPts := points(s.Match.Result())
	s.Home.TournamentPoints = floor(s.Home.TournamentPoints - homePts)
	s.Away.TournamentPoints = floor(s.Away.TournamentPoints - awayPts)
	s.Home.MatchPoints = floor(s.Home.MatchPoints - s.Match.HomeScore)
	s.Away.MatchPoints = floor(s.Away.MatchPoints - s.Match.AwayScore)
	s.Match.IsFinished = false
	s.Match.HomeScore = 0
	s.Match.AwayScore = 0
	return s
}

func points(r match.Result) (home, away int) {
	switch r {
	case match.ResultHomeWin:
		return PointsWin, 0
	case match.ResultAwayWin:
		return 0, PointsWin
	default:
		return PointsDraw, PointsDraw
	}
}

func checkSubstitute(state MatchState, e matchevent.Event) error {
	if e.Type != matchevent.TypeSubstitution {
		if e.SubstitutePlayerID != "" {
			return errors.Wrapf(ErrUnexpectedSubstitute, "type=%s", e.Type)
		}
		return nil
	}
	if e.SubstitutePlayerID == "" {
		return ErrMissingSubstitute
	}
	sub, ok := state.Players[e.SubstitutePlayerID]
	if !ok {
		return errors.Wrapf(ErrPlayerNotFound, "substitute=%s", e.SubstitutePlayerID)
	}
	if sub.TeamID != e.TeamID {
		return errors.Wrapf(ErrSubstituteWrongTeam, "substitute=%s team=%s", sub.ID, e.TeamID)
	}
	return nil
}

func increment(p *player.Player, t matchevent.Type) {
	switch t {
	case matchevent.TypeGoal:
		p.Goals++
	case matchevent.TypeOwnGoal:
		p.OwnGoals++
	case matchevent.TypeYellowCard:
		p.YellowCards++
	case matchevent.TypeRedCard:
		p.RedCards++
	}
}

func decrement(p *player.Player, t matchevent.Type) {
	switch t {
	case matchevent.TypeGoal:
		p.Goals = floor(p.Goals - 1)
	case matchevent.TypeOwnGoal:
		p.OwnGoals = floor(p.OwnGoals - 1)
	case matchevent.TypeYellowCard:
		p.YellowCards = floor(p.YellowCards - 1)
	case matchevent.TypeRedCard:
		p.RedCards = floor(p.RedCards - 1)
	}
}

func floor(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// String is used in log lines.
func (c Changeset) String() string {
	return fmt.Sprintf("match=%s score=%d-%d finished=%t teams=%d players=%d insert=%d delete=%d",
		c.Match.ID, c.Match.HomeScore, c.Match.AwayScore, c.Match.IsFinished,
		len(c.Teams), len(c.Players), len(c.InsertEvents), len(c.DeleteEventIDs))
}
