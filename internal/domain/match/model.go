package match

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrSelfMatch = errors.New("a team cannot play against itself")
	ErrSlotTaken = errors.New("field is already booked at that start time")
)

// Result is the outcome of a finished match from the home side's view.
type Result int

const (
	ResultDraw Result = iota
	ResultHomeWin
	ResultAwayWin
)

// Match is one fixture between two teams of the same tournament.
type Match struct {
	ID           string
	TournamentID string
	HomeTeamID   string
	AwayTeamID   string
	FieldID      string
	StartTime    time.Time
	HomeScore    int
	AwayScore    int
	IsFinished   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Slot identifies the field booking a match occupies.
type Slot struct {
	FieldID   string
	StartTime time.Time
}

func (s Slot) Key() string {
	return s.FieldID + "@" + s.StartTime.UTC().Format(time.RFC3339Nano)
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.TournamentID == "" {
		return fmt.Errorf("match tournament id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match teams are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return ErrSelfMatch
	}
	if m.FieldID == "" {
		return fmt.Errorf("match field is required")
	}
	if m.StartTime.IsZero() {
		return fmt.Errorf("match start time is required")
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return fmt.Errorf("match score cannot be negative")
	}

	return nil
}

func (m Match) Slot() Slot {
	return Slot{FieldID: m.FieldID, StartTime: m.StartTime}
}

func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

// Opponent returns the other side of the match for teamID.
func (m Match) Opponent(teamID string) (string, bool) {
	switch teamID {
	case m.HomeTeamID:
		return m.AwayTeamID, true
	case m.AwayTeamID:
		return m.HomeTeamID, true
	default:
		return "", false
	}
}

func (m Match) Result() Result {
	switch {
	case m.HomeScore > m.AwayScore:
		return ResultHomeWin
	case m.HomeScore < m.AwayScore:
		return ResultAwayWin
	default:
		return ResultDraw
	}
}

// FindSlotConflict reports the first pair of matches sharing a slot.
func FindSlotConflict(items []Match) (Match, Match, bool) {
	seen := make(map[string]Match, len(items))
	for _, item := range items {
		key := item.Slot().Key()
		if prev, ok := seen[key]; ok {
			return prev, item, true
		}
		seen[key] = item
	}
	return Match{}, Match{}, false
}
