package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	idgen "github.com/VeselinMar/TournamentManager/internal/platform/id"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
)

type CreateMatchInput struct {
	OwnerID    string
	Slug       string
	HomeTeamID string
	AwayTeamID string
	FieldID    string
	StartTime  time.Time
}

type EventView struct {
	Event   matchevent.Event
	Summary string
}

// MatchView is a match with the names needed to display it.
type MatchView struct {
	Match    match.Match
	HomeTeam team.Team
	AwayTeam team.Team
	Field    field.Field
	Events   []EventView
}

type MatchService struct {
	access     tournamentAccess
	teamRepo   team.Repository
	playerRepo player.Repository
	fieldRepo  field.Repository
	matchRepo  match.Repository
	eventRepo  matchevent.Repository
	standings  standingsInvalidator
	locks      *resilience.KeyedMutex
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	fieldRepo field.Repository,
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	invalidator standingsInvalidator,
	locks *resilience.KeyedMutex,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}

	return &MatchService{
		access:     tournamentAccess{repo: tournamentRepo},
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		fieldRepo:  fieldRepo,
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		standings:  invalidator,
		locks:      locks,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create", tournamentAttr(input.Slug))
	defer span.End()

	t, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return MatchView{}, err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	id, err := s.idGen.NewID()
	if err != nil {
		return MatchView{}, fmt.Errorf("generate match id: %w", err)
	}
	now := s.now().UTC()
	item := match.Match{
		ID:           id,
		TournamentID: t.ID,
		HomeTeamID:   strings.TrimSpace(input.HomeTeamID),
		AwayTeamID:   strings.TrimSpace(input.AwayTeamID),
		FieldID:      strings.TrimSpace(input.FieldID),
		StartTime:    input.StartTime.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := item.Validate(); err != nil {
		return MatchView{}, classify(fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	home, err := s.teamOf(ctx, t.ID, item.HomeTeamID)
	if err != nil {
		return MatchView{}, err
	}
	away, err := s.teamOf(ctx, t.ID, item.AwayTeamID)
	if err != nil {
		return MatchView{}, err
	}
	pitch, exists, err := s.fieldRepo.GetByID(ctx, t.ID, item.FieldID)
	if err != nil {
		return MatchView{}, fmt.Errorf("get field: %w", err)
	}
	if !exists {
		return MatchView{}, invalidInput("field %s does not belong to the tournament", item.FieldID)
	}

	existing, err := s.matchRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return MatchView{}, fmt.Errorf("list matches: %w", err)
	}
	if a, _, clash := match.FindSlotConflict(append(existing, item)); clash {
		return MatchView{}, classify(fmt.Errorf("%w: field=%s start=%s held by match=%s",
			match.ErrSlotTaken, item.FieldID, item.StartTime.Format(time.RFC3339), a.ID))
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		return MatchView{}, classify(fmt.Errorf("create match: %w", err))
	}
	invalidateStandings(ctx, s.standings, t.ID)

	s.logger.InfoContext(ctx, "match created", "tournament_id", t.ID, "match_id", item.ID, "field_id", item.FieldID)
	return MatchView{Match: item, HomeTeam: home, AwayTeam: away, Field: pitch, Events: []EventView{}}, nil
}

// List returns the tournament's matches ordered by start time, then field
// name.
func (s *MatchService) List(ctx context.Context, slug string) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List", tournamentAttr(slug))
	defer span.End()

	t, err := s.access.resolve(ctx, slug)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	teams, fields, err := s.lookups(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	out := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		out = append(out, MatchView{
			Match:    m,
			HomeTeam: teams[m.HomeTeamID],
			AwayTeam: teams[m.AwayTeamID],
			Field:    fields[m.FieldID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Match.StartTime.Equal(out[j].Match.StartTime) {
			return out[i].Match.StartTime.Before(out[j].Match.StartTime)
		}
		return strings.ToLower(out[i].Field.Name) < strings.ToLower(out[j].Field.Name)
	})

	return out, nil
}

// Get returns one match with its event log in (minute, creation) order.
func (s *MatchService) Get(ctx context.Context, slug, matchID string) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get", tournamentAttr(slug))
	defer span.End()

	t, err := s.access.resolve(ctx, slug)
	if err != nil {
		return MatchView{}, err
	}

	m, exists, err := s.matchRepo.GetByID(ctx, t.ID, strings.TrimSpace(matchID))
	if err != nil {
		return MatchView{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return MatchView{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	teams, fields, err := s.lookups(ctx, t.ID)
	if err != nil {
		return MatchView{}, err
	}
	events, err := s.eventRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return MatchView{}, fmt.Errorf("list match events: %w", err)
	}
	names, err := s.playerNames(ctx, events)
	if err != nil {
		return MatchView{}, err
	}

	matchevent.Sort(events)
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{Event: e, Summary: summarize(e, names, teams)})
	}

	return MatchView{
		Match:    m,
		HomeTeam: teams[m.HomeTeamID],
		AwayTeam: teams[m.AwayTeamID],
		Field:    fields[m.FieldID],
		Events:   views,
	}, nil
}

func (s *MatchService) teamOf(ctx context.Context, tournamentID, teamID string) (team.Team, error) {
	item, exists, err := s.teamRepo.GetByID(ctx, tournamentID, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, invalidInput("team %s does not belong to the tournament", teamID)
	}
	return item, nil
}

func (s *MatchService) lookups(ctx context.Context, tournamentID string) (map[string]team.Team, map[string]field.Field, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("list teams: %w", err)
	}
	fields, err := s.fieldRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("list fields: %w", err)
	}

	teamByID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		teamByID[item.ID] = item
	}
	fieldByID := make(map[string]field.Field, len(fields))
	for _, item := range fields {
		fieldByID[item.ID] = item
	}
	return teamByID, fieldByID, nil
}

func (s *MatchService) playerNames(ctx context.Context, events []matchevent.Event) (map[string]string, error) {
	ids := make([]string, 0, len(events)*2)
	for _, e := range events {
		if e.PlayerID != "" {
			ids = append(ids, e.PlayerID)
		}
		if e.SubstitutePlayerID != "" {
			ids = append(ids, e.SubstitutePlayerID)
		}
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get event players: %w", err)
	}
	out := make(map[string]string, len(players))
	for _, p := range players {
		out[p.ID] = p.Name
	}
	return out, nil
}

func summarize(e matchevent.Event, playerNames map[string]string, teams map[string]team.Team) string {
	return matchevent.Summary(e, matchevent.Names{
		Player:     playerNames[e.PlayerID],
		Substitute: playerNames[e.SubstitutePlayerID],
		Team:       teams[e.TeamID].Name,
	})
}
