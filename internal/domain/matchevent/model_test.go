package matchevent

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func TestParseType(t *testing.T) {
	got, err := ParseType(" Own_Goal ")
	if err != nil || got != TypeOwnGoal {
		t.Fatalf("ParseType got=%q err=%v", got, err)
	}
	if _, err := ParseType("corner"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("unexpected error got=%v want=%v", err, ErrUnknownType)
	}
}

func TestTally_OwnGoalCreditsOpponent(t *testing.T) {
	events := []Event{
		{TeamID: "y", Type: TypeOwnGoal},
	}
	home, away := Tally("x", "y", events)
	if home != 1 || away != 0 {
		t.Fatalf("Tally got=%d-%d want=1-0", home, away)
	}
}

func TestGoalsFilter(t *testing.T) {
	events := []Event{
		{ID: "1", Type: TypeGoal},
		{ID: "2", Type: TypeOwnGoal},
		{ID: "3", Type: TypeYellowCard},
		{ID: "4", Type: TypeGoal},
	}
	goals := Goals(events)
	if len(goals) != 2 || goals[0].ID != "1" || goals[1].ID != "4" {
		t.Fatalf("unexpected goals: %+v", goals)
	}
}

func TestSort(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "c", Minute: 30, CreatedAt: base},
		{ID: "b", Minute: 10, CreatedAt: base.Add(time.Second)},
		{ID: "a", Minute: 10, CreatedAt: base},
	}
	Sort(events)
	if events[0].ID != "a" || events[1].ID != "b" || events[2].ID != "c" {
		t.Fatalf("unexpected order: %s %s %s", events[0].ID, events[1].ID, events[2].ID)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		event Event
		names Names
		want  string
	}{
		{
			event: Event{Type: TypeGoal, Minute: 23},
			names: Names{Player: "Ana Petrova", Team: "Lions"},
			want:  "GOAL: Ana Petrova (Lions) 23'",
		},
		{
			event: Event{Type: TypeSubstitution, Minute: 60},
			names: Names{Player: "A", Substitute: "B", Team: "Lions"},
			want:  "SUBSTITUTION: A → B (Lions) 60'",
		},
		{
			event: Event{Type: TypeOwnGoal, Minute: 5},
			want:  "OWN GOAL: Unknown player 5'",
		},
	}

	for _, tc := range tests {
		if got := Summary(tc.event, tc.names); got != tc.want {
			t.Fatalf("Summary got=%q want=%q", got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	e := Event{ID: "e", MatchID: "m", TeamID: "t", Type: TypeGoal, Minute: MaxMinute + 1}
	if err := e.Validate(); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("minute range got=%v want=%v", err, ErrInvalidEvent)
	}
	e.Minute = 90
	e.PlayerID, e.SubstitutePlayerID = "p", "p"
	if err := e.Validate(); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("self substitution got=%v want=%v", err, ErrInvalidEvent)
	}
	e.SubstitutePlayerID = "q"
	if err := e.Validate(); err != nil {
		t.Fatalf("valid event refused: %v", err)
	}
}
