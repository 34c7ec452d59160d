package standings

import (
	"sort"
	"strings"

	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
)

const DefaultTopScorers = 5

// Rank orders teams by tournament points, breaking ties inside each points
// cohort by head-to-head goal differential among that cohort only, then by
// name ascending. Names compare case-insensitively, so "ajax" sorts before
// "Benfica"; names equal apart from case fall back to byte order. Only
// finished matches are considered.
func Rank(teams []team.Team, matches []match.Match, events []matchevent.Event) []Row {
	eventsByMatch := make(map[string][]matchevent.Event)
	for _, e := range events {
		eventsByMatch[e.MatchID] = append(eventsByMatch[e.MatchID], e)
	}

	finished := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsFinished {
			finished = append(finished, m)
		}
	}

	ordered := append([]team.Team(nil), teams...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TournamentPoints > ordered[j].TournamentPoints
	})

	rows := make([]Row, 0, len(ordered))
	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) && ordered[end].TournamentPoints == ordered[start].TournamentPoints {
			end++
		}
		rows = append(rows, rankCohort(ordered[start:end], finished, eventsByMatch)...)
		start = end
	}

	summary := summarize(finished, eventsByMatch)
	for i := range rows {
		rows[i].Position = i + 1
		s := summary[rows[i].Team.ID]
		rows[i].Played = s.Played
		rows[i].Won = s.Won
		rows[i].Drawn = s.Drawn
		rows[i].Lost = s.Lost
		rows[i].GoalsFor = s.GoalsFor
		rows[i].GoalsAgainst = s.GoalsAgainst
	}

	return rows
}

func rankCohort(cohort []team.Team, finished []match.Match, eventsByMatch map[string][]matchevent.Event) []Row {
	if len(cohort) == 1 {
		return []Row{{Team: cohort[0]}}
	}

	members := make(map[string]struct{}, len(cohort))
	for _, t := range cohort {
		members[t.ID] = struct{}{}
	}

	diff := make(map[string]int, len(cohort))
	for _, m := range finished {
		_, homeIn := members[m.HomeTeamID]
		_, awayIn := members[m.AwayTeamID]
		if !homeIn || !awayIn {
			continue
		}
		home, away := matchevent.Tally(m.HomeTeamID, m.AwayTeamID, eventsByMatch[m.ID])
		diff[m.HomeTeamID] += home - away
		diff[m.AwayTeamID] += away - home
	}

	rows := make([]Row, 0, len(cohort))
	for _, t := range cohort {
		rows = append(rows, Row{Team: t, HeadToHead: diff[t.ID]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].HeadToHead != rows[j].HeadToHead {
			return rows[i].HeadToHead > rows[j].HeadToHead
		}
		return lessName(rows[i].Team.Name, rows[j].Team.Name)
	})

	return rows
}

type record struct {
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
}

func summarize(finished []match.Match, eventsByMatch map[string][]matchevent.Event) map[string]record {
	out := make(map[string]record)
	for _, m := range finished {
		home, away := matchevent.Tally(m.HomeTeamID, m.AwayTeamID, eventsByMatch[m.ID])
		h := out[m.HomeTeamID]
		a := out[m.AwayTeamID]
		h.Played++
		a.Played++
		h.GoalsFor += home
		h.GoalsAgainst += away
		a.GoalsFor += away
		a.GoalsAgainst += home
		switch {
		case home > away:
			h.Won++
			a.Lost++
		case home < away:
			a.Won++
			h.Lost++
		default:
			h.Drawn++
			a.Drawn++
		}
		out[m.HomeTeamID] = h
		out[m.AwayTeamID] = a
	}
	return out
}

// TopScorers returns at most n players with at least one goal, by goals
// descending. Equal tallies keep the input order.
func TopScorers(players []player.Player, teams []team.Team, n int) []Scorer {
	if n <= 0 {
		return nil
	}

	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	scorers := make([]Scorer, 0, len(players))
	for _, p := range players {
		if p.Goals <= 0 {
			continue
		}
		scorers = append(scorers, Scorer{Player: p, TeamName: teamNames[p.TeamID]})
	}
	sort.SliceStable(scorers, func(i, j int) bool {
		return scorers[i].Player.Goals > scorers[j].Player.Goals
	})

	if len(scorers) > n {
		scorers = scorers[:n]
	}
	return scorers
}

// Build assembles the complete standings table.
func Build(tournamentID string, teams []team.Team, players []player.Player, matches []match.Match, events []matchevent.Event, topN int) Table {
	finished := 0
	for _, m := range matches {
		if m.IsFinished {
			finished++
		}
	}

	return Table{
		TournamentID:    tournamentID,
		Teams:           Rank(teams, matches, events),
		TopScorers:      TopScorers(players, teams, topN),
		FinishedMatches: finished,
		TotalMatches:    len(matches),
	}
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
