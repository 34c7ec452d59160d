package httpapi

import (
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/standings"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	"github.com/VeselinMar/TournamentManager/internal/usecase"
)

type createTournamentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type updateTournamentRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=200"`
	IsFinished *bool   `json:"isFinished"`
}

type createTeamRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
}

type updateTeamRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	LogoURL *string `json:"logoUrl" validate:"omitempty"`
}

type createPlayerRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type importRosterRequest struct {
	Text string `json:"text" validate:"required"`
}

type createFieldRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type createMatchRequest struct {
	HomeTeamID string    `json:"homeTeamId" validate:"required"`
	AwayTeamID string    `json:"awayTeamId" validate:"required,nefield=HomeTeamID"`
	FieldID    string    `json:"fieldId" validate:"required"`
	StartTime  time.Time `json:"startTime" validate:"required"`
}

type createEventRequest struct {
	Type               string `json:"type" validate:"required"`
	TeamSide           string `json:"teamSide" validate:"required,oneof=home away"`
	PlayerID           string `json:"playerId" validate:"required"`
	SubstitutePlayerID string `json:"substitutePlayerId" validate:"omitempty,nefield=PlayerID"`
	Minute             *int   `json:"minute" validate:"required,min=0,max=200"`
}

type delayMatchRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
}

type generateScheduleRequest struct {
	StartTime            time.Time `json:"startTime" validate:"required"`
	GameDurationMinutes  int       `json:"gameDurationMinutes" validate:"required,min=1"`
	PauseDurationMinutes int       `json:"pauseDurationMinutes" validate:"min=0"`
}

type tournamentDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	IsFinished bool   `json:"isFinished"`
	IsActive   bool   `json:"isActive,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

type teamDTO struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	LogoURL          string      `json:"logoUrl,omitempty"`
	TournamentPoints int         `json:"tournamentPoints"`
	MatchPoints      int         `json:"matchPoints"`
	Players          []playerDTO `json:"players,omitempty"`
}

type playerDTO struct {
	ID              string `json:"id"`
	TeamID          string `json:"teamId"`
	Name            string `json:"name"`
	Goals           int    `json:"goals"`
	OwnGoals        int    `json:"ownGoals"`
	YellowCards     int    `json:"yellowCards"`
	RedCards        int    `json:"redCards"`
	IsAllowedToPlay bool   `json:"isAllowedToPlay"`
}

type fieldDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type matchDTO struct {
	ID         string     `json:"id"`
	HomeTeam   teamRefDTO `json:"homeTeam"`
	AwayTeam   teamRefDTO `json:"awayTeam"`
	Field      fieldDTO   `json:"field"`
	StartTime  string     `json:"startTime"`
	HomeScore  int        `json:"homeScore"`
	AwayScore  int        `json:"awayScore"`
	IsFinished bool       `json:"isFinished"`
	Events     []eventDTO `json:"events,omitempty"`
}

type teamRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type eventDTO struct {
	ID                 string `json:"id"`
	MatchID            string `json:"matchId"`
	TeamID             string `json:"teamId"`
	PlayerID           string `json:"playerId,omitempty"`
	SubstitutePlayerID string `json:"substitutePlayerId,omitempty"`
	Type               string `json:"type"`
	Minute             int    `json:"minute"`
	Summary            string `json:"summary,omitempty"`
}

type eventResultDTO struct {
	Event     eventDTO `json:"event"`
	HomeScore int      `json:"homeScore"`
	AwayScore int      `json:"awayScore"`
}

type scoreDTO struct {
	MatchID   string `json:"matchId"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
}

type matchResultDTO struct {
	MatchID    string `json:"matchId"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	IsFinished bool   `json:"isFinished"`
}

type scheduleDTO struct {
	Matches []scheduledMatchDTO `json:"matches"`
}

type scheduledMatchDTO struct {
	ID         string `json:"id"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	FieldID    string `json:"fieldId"`
	StartTime  string `json:"startTime"`
}

type rosterImportDTO struct {
	CreatedTeams   int              `json:"createdTeams"`
	CreatedPlayers int              `json:"createdPlayers"`
	Skipped        []skippedLineDTO `json:"skipped"`
}

type skippedLineDTO struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type standingsDTO struct {
	Teams           []standingRowDTO `json:"teams"`
	TopScorers      []scorerDTO      `json:"topScorers"`
	FinishedMatches int              `json:"finishedMatches"`
	TotalMatches    int              `json:"totalMatches"`
}

type standingRowDTO struct {
	Position         int    `json:"position"`
	TeamID           string `json:"teamId"`
	TeamName         string `json:"teamName"`
	TournamentPoints int    `json:"tournamentPoints"`
	MatchPoints      int    `json:"matchPoints"`
	Played           int    `json:"played"`
	Won              int    `json:"won"`
	Drawn            int    `json:"drawn"`
	Lost             int    `json:"lost"`
	GoalsFor         int    `json:"goalsFor"`
	GoalsAgainst     int    `json:"goalsAgainst"`
	GoalDifference   int    `json:"goalDifference"`
	HeadToHead       int    `json:"headToHead"`
}

type scorerDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	TeamName string `json:"teamName"`
	Goals    int    `json:"goals"`
}

type overviewDTO struct {
	Tournament      tournamentDTO   `json:"tournament"`
	Leader          *standingRowDTO `json:"leader,omitempty"`
	TopScorer       *scorerDTO      `json:"topScorer,omitempty"`
	FinishedMatches int             `json:"finishedMatches"`
	TotalMatches    int             `json:"totalMatches"`
	Error           string          `json:"error,omitempty"`
}

func formatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339)
}

func tournamentToDTO(v tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:         v.ID,
		Name:       v.Name,
		Slug:       v.Slug,
		IsFinished: v.IsFinished,
		CreatedAt:  formatTime(v.CreatedAt),
	}
}

func teamToDTO(v team.Team, players []player.Player) teamDTO {
	out := teamDTO{
		ID:               v.ID,
		Name:             v.Name,
		LogoURL:          v.LogoURL,
		TournamentPoints: v.TournamentPoints,
		MatchPoints:      v.MatchPoints,
	}
	if len(players) > 0 {
		out.Players = make([]playerDTO, 0, len(players))
		for _, p := range players {
			out.Players = append(out.Players, playerToDTO(p))
		}
	}
	return out
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:              v.ID,
		TeamID:          v.TeamID,
		Name:            v.Name,
		Goals:           v.Goals,
		OwnGoals:        v.OwnGoals,
		YellowCards:     v.YellowCards,
		RedCards:        v.RedCards,
		IsAllowedToPlay: v.IsAllowedToPlay,
	}
}

func fieldToDTO(v field.Field) fieldDTO {
	return fieldDTO{ID: v.ID, Name: v.Name}
}

func matchViewToDTO(v usecase.MatchView) matchDTO {
	out := matchDTO{
		ID:         v.Match.ID,
		HomeTeam:   teamRefDTO{ID: v.Match.HomeTeamID, Name: v.HomeTeam.Name},
		AwayTeam:   teamRefDTO{ID: v.Match.AwayTeamID, Name: v.AwayTeam.Name},
		Field:      fieldDTO{ID: v.Match.FieldID, Name: v.Field.Name},
		StartTime:  formatTime(v.Match.StartTime),
		HomeScore:  v.Match.HomeScore,
		AwayScore:  v.Match.AwayScore,
		IsFinished: v.Match.IsFinished,
	}
	for _, e := range v.Events {
		item := eventToDTO(e.Event)
		item.Summary = e.Summary
		out.Events = append(out.Events, item)
	}
	return out
}

func eventToDTO(v matchevent.Event) eventDTO {
	return eventDTO{
		ID:                 v.ID,
		MatchID:            v.MatchID,
		TeamID:             v.TeamID,
		PlayerID:           v.PlayerID,
		SubstitutePlayerID: v.SubstitutePlayerID,
		Type:               string(v.Type),
		Minute:             v.Minute,
	}
}

func matchResultToDTO(m match.Match) matchResultDTO {
	return matchResultDTO{
		MatchID:    m.ID,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		IsFinished: m.IsFinished,
	}
}

func scheduleToDTO(items []match.Match) scheduleDTO {
	out := scheduleDTO{Matches: make([]scheduledMatchDTO, 0, len(items))}
	for _, m := range items {
		out.Matches = append(out.Matches, scheduledMatchDTO{
			ID:         m.ID,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
			FieldID:    m.FieldID,
			StartTime:  formatTime(m.StartTime),
		})
	}
	return out
}

func standingRowToDTO(v standings.Row) standingRowDTO {
	return standingRowDTO{
		Position:         v.Position,
		TeamID:           v.Team.ID,
		TeamName:         v.Team.Name,
		TournamentPoints: v.Team.TournamentPoints,
		MatchPoints:      v.Team.MatchPoints,
		Played:           v.Played,
		Won:              v.Won,
		Drawn:            v.Drawn,
		Lost:             v.Lost,
		GoalsFor:         v.GoalsFor,
		GoalsAgainst:     v.GoalsAgainst,
		GoalDifference:   v.GoalsFor - v.GoalsAgainst,
		HeadToHead:       v.HeadToHead,
	}
}

func scorerToDTO(v standings.Scorer) scorerDTO {
	return scorerDTO{
		PlayerID: v.Player.ID,
		Name:     v.Player.Name,
		TeamName: v.TeamName,
		Goals:    v.Player.Goals,
	}
}

func standingsToDTO(v standings.Table) standingsDTO {
	out := standingsDTO{
		Teams:           make([]standingRowDTO, 0, len(v.Teams)),
		TopScorers:      make([]scorerDTO, 0, len(v.TopScorers)),
		FinishedMatches: v.FinishedMatches,
		TotalMatches:    v.TotalMatches,
	}
	for _, row := range v.Teams {
		out.Teams = append(out.Teams, standingRowToDTO(row))
	}
	for _, s := range v.TopScorers {
		out.TopScorers = append(out.TopScorers, scorerToDTO(s))
	}
	return out
}

func overviewToDTO(v usecase.TournamentOverview) overviewDTO {
	out := overviewDTO{
		Tournament:      tournamentToDTO(v.Tournament),
		FinishedMatches: v.FinishedMatches,
		TotalMatches:    v.TotalMatches,
	}
	if v.Leader != nil {
		row := standingRowToDTO(*v.Leader)
		out.Leader = &row
	}
	if v.TopScorer != nil {
		s := scorerToDTO(*v.TopScorer)
		out.TopScorer = &s
	}
	if v.Err != nil {
		out.Error = mapError(v.Err).Reason
	}
	return out
}
