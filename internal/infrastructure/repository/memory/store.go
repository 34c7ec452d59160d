package memory

import (
	"sync"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
)

// Store holds every entity in process memory behind one lock, so a
// multi-row write is observed by readers either fully or not at all.
// Slices keep insertion order; reads hand out copies.
type Store struct {
	mu sync.RWMutex

	tournaments []tournament.Tournament
	teams       []team.Team
	players     []player.Player
	fields      []field.Field
	matches     []match.Match
	events      []matchevent.Event
}

func NewStore() *Store {
	return &Store{}
}

func indexOf[T any](items []T, id func(T) string, want string) int {
	for i, item := range items {
		if id(item) == want {
			return i
		}
	}
	return -1
}

func tournamentID(t tournament.Tournament) string { return t.ID }
func teamID(t team.Team) string                   { return t.ID }
func playerID(p player.Player) string             { return p.ID }
func fieldID(f field.Field) string                { return f.ID }
func matchID(m match.Match) string                { return m.ID }
func eventID(e matchevent.Event) string           { return e.ID }

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
