package standings

import (
	"testing"

	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goal(id, matchID, teamID string) matchevent.Event {
	return matchevent.Event{ID: id, MatchID: matchID, TeamID: teamID, Type: matchevent.TypeGoal}
}

func rankedIDs(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Team.ID)
	}
	return out
}

func TestRank_HeadToHeadBreaksPointsTie(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: "C", Name: "Crows", TournamentPoints: 3},
		{ID: "B", Name: "Bears", TournamentPoints: 6},
		{ID: "A", Name: "Ants", TournamentPoints: 6},
	}
	matches := []match.Match{
		{ID: "ab", HomeTeamID: "B", AwayTeamID: "A", IsFinished: true},
	}
	events := []matchevent.Event{
		goal("1", "ab", "A"),
		goal("2", "ab", "A"),
		goal("3", "ab", "B"),
	}

	rows := Rank(teams, matches, events)
	require.Equal(t, []string{"A", "B", "C"}, rankedIDs(rows))
	assert.Equal(t, 1, rows[0].HeadToHead)
	assert.Equal(t, -1, rows[1].HeadToHead)
	assert.Equal(t, []int{1, 2, 3}, []int{rows[0].Position, rows[1].Position, rows[2].Position})
}

func TestRank_TieBreakIsLocalToCohort(t *testing.T) {
	t.Parallel()

	// B thrashed D, but D sits in another cohort so it must not help B
	// against A.
	teams := []team.Team{
		{ID: "A", Name: "Ants", TournamentPoints: 4},
		{ID: "B", Name: "Bears", TournamentPoints: 4},
		{ID: "D", Name: "Doves", TournamentPoints: 0},
	}
	matches := []match.Match{
		{ID: "bd", HomeTeamID: "B", AwayTeamID: "D", IsFinished: true},
	}
	events := []matchevent.Event{
		goal("1", "bd", "B"),
		goal("2", "bd", "B"),
		goal("3", "bd", "B"),
	}

	rows := Rank(teams, matches, events)
	require.Equal(t, []string{"A", "B", "D"}, rankedIDs(rows))
	assert.Equal(t, 0, rows[1].HeadToHead)
	assert.Equal(t, 3, rows[1].GoalsFor)
}

func TestRank_IgnoresUnfinishedMatchesAndCountsOwnGoals(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: "A", Name: "Ants", TournamentPoints: 1},
		{ID: "B", Name: "Bears", TournamentPoints: 1},
	}
	matches := []match.Match{
		{ID: "done", HomeTeamID: "A", AwayTeamID: "B", IsFinished: true},
		{ID: "live", HomeTeamID: "A", AwayTeamID: "B"},
	}
	events := []matchevent.Event{
		{ID: "og", MatchID: "done", TeamID: "A", Type: matchevent.TypeOwnGoal},
		goal("x", "live", "A"),
		goal("y", "live", "A"),
	}

	rows := Rank(teams, matches, events)
	require.Equal(t, []string{"B", "A"}, rankedIDs(rows))
	assert.Equal(t, 1, rows[0].Won)
	assert.Equal(t, 1, rows[0].Played)
	assert.Equal(t, 1, rows[1].Lost)
}

func TestRank_EqualDifferentialFallsBackToName(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: "z", Name: "zebras"},
		{ID: "a", Name: "Aardvarks"},
		{ID: "m", Name: "Moles"},
	}

	rows := Rank(teams, nil, nil)
	require.Equal(t, []string{"a", "m", "z"}, rankedIDs(rows))
}

func TestRank_NameOrderIgnoresCase(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: "b", Name: "Benfica"},
		{ID: "a", Name: "ajax"},
		{ID: "A", Name: "AJAX"},
	}

	rows := Rank(teams, nil, nil)
	require.Equal(t, []string{"A", "a", "b"}, rankedIDs(rows))
}

func TestTopScorers(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "A", Name: "Ants"}, {ID: "B", Name: "Bears"}}
	players := []player.Player{
		{ID: "p1", TeamID: "A", Name: "One", Goals: 2},
		{ID: "p2", TeamID: "B", Name: "Two", Goals: 5},
		{ID: "p3", TeamID: "A", Name: "Three", Goals: 2},
		{ID: "p4", TeamID: "B", Name: "Four", Goals: 0},
	}

	got := TopScorers(players, teams, 5)
	require.Len(t, got, 3)
	assert.Equal(t, "p2", got[0].Player.ID)
	assert.Equal(t, "Bears", got[0].TeamName)
	assert.Equal(t, "p1", got[1].Player.ID)
	assert.Equal(t, "p3", got[2].Player.ID)

	assert.Len(t, TopScorers(players, teams, 1), 1)
	assert.Empty(t, TopScorers(players, teams, 0))
}

func TestBuild_Leader(t *testing.T) {
	t.Parallel()

	table := Build("t1", []team.Team{{ID: "A", Name: "Ants", TournamentPoints: 3}}, nil, nil, nil, DefaultTopScorers)
	leader, ok := table.Leader()
	require.True(t, ok)
	assert.Equal(t, "A", leader.Team.ID)

	_, ok = Table{}.Leader()
	assert.False(t, ok)
}
