package matchevent

import (
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrUnknownType  = errors.New("unknown match event type")
	ErrInvalidEvent = errors.New("invalid match event")
)

// Type discriminates the kinds of events a match ledger records.
type Type string

const (
	TypeGoal         Type = "goal"
	TypeOwnGoal      Type = "own_goal"
	TypeYellowCard   Type = "yellow_card"
	TypeRedCard      Type = "red_card"
	TypeSubstitution Type = "substitution"
)

var AllTypes = []Type{TypeGoal, TypeOwnGoal, TypeYellowCard, TypeRedCard, TypeSubstitution}

const MaxMinute = 200

func ParseType(raw string) (Type, error) {
	value := Type(strings.ToLower(strings.TrimSpace(raw)))
	for _, t := range AllTypes {
		if t == value {
			return t, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownType, "type=%q", raw)
}

func (t Type) IsGoal() bool {
	return t == TypeGoal
}

// Scores reports whether the event changes the scoreline.
func (t Type) Scores() bool {
	return t == TypeGoal || t == TypeOwnGoal
}

func (t Type) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
}

// Event is one entry of a match ledger.
type Event struct {
	ID                 string
	TournamentID       string
	MatchID            string
	TeamID             string
	PlayerID           string
	SubstitutePlayerID string
	Type               Type
	Minute             int
	CreatedAt          time.Time
}

func (e Event) Validate() error {
	if e.ID == "" {
		return errors.Wrap(ErrInvalidEvent, "event id is required")
	}
	if e.MatchID == "" {
		return errors.Wrap(ErrInvalidEvent, "event match id is required")
	}
	if e.TeamID == "" {
		return errors.Wrap(ErrInvalidEvent, "event team id is required")
	}
	if _, err := ParseType(string(e.Type)); err != nil {
		return err
	}
	if e.Minute < 0 || e.Minute > MaxMinute {
		return errors.Wrapf(ErrInvalidEvent, "event minute must be between 0 and %d", MaxMinute)
	}
	if e.SubstitutePlayerID != "" && e.SubstitutePlayerID == e.PlayerID {
		return errors.Wrap(ErrInvalidEvent, "a player cannot substitute themselves")
	}

	return nil
}

// Goals keeps only goal events.
func Goals(events []Event) []Event {
	return OfType(events, TypeGoal)
}

func OfType(events []Event, t Type) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Sort orders events by minute, then creation time.
func Sort(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Minute != events[j].Minute {
			return events[i].Minute < events[j].Minute
		}
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].CreatedAt.Before(events[j].CreatedAt)
		}
		return events[i].ID < events[j].ID
	})
}

// CreditedTeam returns the team whose score the event increases. Own goals
// count for the opponent of the team that conceded them.
func CreditedTeam(e Event, homeTeamID, awayTeamID string) (string, bool) {
	switch e.Type {
	case TypeGoal:
		return e.TeamID, true
	case TypeOwnGoal:
		switch e.TeamID {
		case homeTeamID:
			return awayTeamID, true
		case awayTeamID:
			return homeTeamID, true
		}
	}
	return "", false
}

// Tally counts the score of one match from its events.
func Tally(homeTeamID, awayTeamID string, events []Event) (home, away int) {
	for _, e := range events {
		credited, ok := CreditedTeam(e, homeTeamID, awayTeamID)
		if !ok {
			continue
		}
		switch credited {
		case homeTeamID:
			home++
		case awayTeamID:
			away++
		}
	}
	return home, away
}
