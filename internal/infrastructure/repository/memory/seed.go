package memory

import (
	"fmt"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
)

const (
	DemoTournamentID   = "demo-tournament"
	DemoTournamentSlug = "demo-cup"
)

var demoSquads = []struct {
	name    string
	players []string
}{
	{name: "Lions", players: []string{"Ana Petrova", "Boris Ilic", "Chen Wei"}},
	{name: "Tigers", players: []string{"Dana Novak", "Emil Varga", "Farah Haddad"}},
	{name: "Falcons", players: []string{"Goran Kostov", "Hana Sato", "Ivo Marin"}},
	{name: "Wolves", players: []string{"Jana Hruba", "Kemal Aydin", "Lea Schulz"}},
}

// Demo is a small ready-to-schedule tournament: four squads of three and
// two pitches.
type Demo struct {
	Tournament tournament.Tournament
	Teams      []team.Team
	Players    []player.Player
	Fields     []field.Field
}

func DemoData(ownerID string, now time.Time) Demo {
	out := Demo{
		Tournament: tournament.Tournament{
			ID:        DemoTournamentID,
			OwnerID:   ownerID,
			Name:      "Demo Cup",
			Slug:      DemoTournamentSlug,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for i, squad := range demoSquads {
		teamID := fmt.Sprintf("demo-team-%d", i+1)
		out.Teams = append(out.Teams, team.Team{
			ID:           teamID,
			TournamentID: DemoTournamentID,
			Name:         squad.name,
			CreatedAt:    now,
		})
		for j, name := range squad.players {
			id := fmt.Sprintf("demo-player-%d-%d", i+1, j+1)
			out.Players = append(out.Players, player.New(id, DemoTournamentID, teamID, name, now))
		}
	}

	for i, name := range []string{"North Pitch", "South Pitch"} {
		out.Fields = append(out.Fields, field.Field{
			ID:           fmt.Sprintf("demo-field-%d", i+1),
			TournamentID: DemoTournamentID,
			OwnerID:      ownerID,
			Name:         name,
			CreatedAt:    now,
		})
	}
	return out
}

// SeedDemo fills an empty store with the demo tournament owned by ownerID.
func SeedDemo(store *Store, ownerID string, now time.Time) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if len(store.tournaments) > 0 {
		return
	}

	demo := DemoData(ownerID, now)
	store.tournaments = append(store.tournaments, demo.Tournament)
	store.teams = append(store.teams, demo.Teams...)
	store.players = append(store.players, demo.Players...)
	store.fields = append(store.fields, demo.Fields...)
}
