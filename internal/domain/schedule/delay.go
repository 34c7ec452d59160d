package schedule

import (
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/cockroachdb/errors"
)

var ErrMatchNotInTournament = errors.New("match is not part of the tournament schedule")

// Propagate moves the match to newStart and shifts every other match of the
// tournament that starts strictly after the match's original start time by
// the same delta. It returns only the matches whose start time changed; an
// unchanged start yields nil. The whole resulting schedule is checked for
// double-booked field slots before anything is returned.
func Propagate(matches []match.Match, matchID string, newStart time.Time, now time.Time) ([]match.Match, error) {
	idx := -1
	for i, m := range matches {
		if m.ID == matchID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.Wrapf(ErrMatchNotInTournament, "match=%s", matchID)
	}

	target := matches[idx]
	original := target.StartTime
	delta := newStart.Sub(original)
	if delta == 0 {
		return nil, nil
	}

	next := make([]match.Match, len(matches))
	copy(next, matches)
	changed := make([]match.Match, 0, len(matches))
	for i, m := range next {
		switch {
		case i == idx:
			m.StartTime = newStart
		case m.TournamentID == target.TournamentID && m.StartTime.After(original):
			m.StartTime = m.StartTime.Add(delta)
		default:
			continue
		}
		m.UpdatedAt = now
		next[i] = m
		changed = append(changed, m)
	}

	if a, b, clash := match.FindSlotConflict(next); clash {
		return nil, errors.Wrapf(match.ErrSlotTaken, "matches %s and %s on field %s at %s",
			a.ID, b.ID, a.FieldID, a.StartTime.UTC().Format(time.RFC3339))
	}

	return changed, nil
}
