package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/roster"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	idgen "github.com/VeselinMar/TournamentManager/internal/platform/id"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
)

type CreateTeamInput struct {
	OwnerID string
	Slug    string
	Name    string
	LogoURL string
}

type UpdateTeamInput struct {
	OwnerID string
	Slug    string
	TeamID  string
	Name    *string
	LogoURL *string
}

type CreatePlayerInput struct {
	OwnerID string
	Slug    string
	TeamID  string
	Name    string
}

type ImportRosterInput struct {
	OwnerID string
	Slug    string
	Text    string
}

type ImportRosterResult struct {
	CreatedTeams   int
	CreatedPlayers int
	Skipped        []roster.Skipped
}

type CreateFieldInput struct {
	OwnerID string
	Slug    string
	Name    string
}

type TeamWithPlayers struct {
	Team    team.Team
	Players []player.Player
}

type standingsInvalidator interface {
	Invalidate(ctx context.Context, tournamentID string)
}

type RosterService struct {
	access      tournamentAccess
	teamRepo    team.Repository
	playerRepo  player.Repository
	fieldRepo   field.Repository
	matchRepo   match.Repository
	rosterRepo  roster.Repository
	invalidator standingsInvalidator
	locks       *resilience.KeyedMutex
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewRosterService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	fieldRepo field.Repository,
	matchRepo match.Repository,
	rosterRepo roster.Repository,
	invalidator standingsInvalidator,
	locks *resilience.KeyedMutex,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}

	return &RosterService{
		access:      tournamentAccess{repo: tournamentRepo},
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		fieldRepo:   fieldRepo,
		matchRepo:   matchRepo,
		rosterRepo:  rosterRepo,
		invalidator: invalidator,
		locks:       locks,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *RosterService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreateTeam", tournamentAttr(input.Slug))
	defer span.End()

	t, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return team.Team{}, err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	item := team.Team{
		ID:           id,
		TournamentID: t.ID,
		Name:         strings.TrimSpace(input.Name),
		LogoURL:      strings.TrimSpace(input.LogoURL),
		CreatedAt:    s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.teamRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return team.Team{}, fmt.Errorf("list teams: %w", err)
	}
	if _, taken := findTeamByName(existing, item.Name); taken {
		return team.Team{}, classify(fmt.Errorf("%w: name=%q", team.ErrNameTaken, item.Name))
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, classify(fmt.Errorf("create team: %w", err))
	}
	s.invalidate(ctx, t.ID)

	s.logger.InfoContext(ctx, "team created", "tournament_id", t.ID, "team_id", item.ID, "name", item.Name)
	return item, nil
}

// UpdateTeam changes the display attributes of a team. Points are never
// edited here; they follow match results.
func (s *RosterService) UpdateTeam(ctx context.Context, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateTeam", tournamentAttr(input.Slug))
	defer span.End()

	t, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return team.Team{}, err
	}
	if input.Name == nil && input.LogoURL == nil {
		return team.Team{}, invalidInput("nothing to update")
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	item, exists, err := s.teamRepo.GetByID(ctx, t.ID, strings.TrimSpace(input.TeamID))
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !team.SameName(name, item.Name) {
			existing, err := s.teamRepo.ListByTournament(ctx, t.ID)
			if err != nil {
				return team.Team{}, fmt.Errorf("list teams: %w", err)
			}
			if _, taken := findTeamByName(existing, name); taken {
				return team.Team{}, classify(fmt.Errorf("%w: name=%q", team.ErrNameTaken, name))
			}
		}
		item.Name = name
	}
	if input.LogoURL != nil {
		item.LogoURL = strings.TrimSpace(*input.LogoURL)
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, classify(fmt.Errorf("update team: %w", err))
	}
	s.invalidate(ctx, t.ID)

	s.logger.InfoContext(ctx, "team updated", "tournament_id", t.ID, "team_id", item.ID, "name", item.Name)
	return item, nil
}

// ListTeams returns every team of the tournament with its squad, ordered by
// team name.
func (s *RosterService) ListTeams(ctx context.Context, slug string) ([]TeamWithPlayers, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTeams", tournamentAttr(slug))
	defer span.End()

	t, err := s.access.resolve(ctx, slug)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	players, err := s.playerRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	byTeam := make(map[string][]player.Player, len(teams))
	for _, p := range players {
		byTeam[p.TeamID] = append(byTeam[p.TeamID], p)
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return strings.ToLower(teams[i].Name) < strings.ToLower(teams[j].Name)
	})
	out := make([]TeamWithPlayers, 0, len(teams))
	for _, item := range teams {
		squad := byTeam[item.ID]
		if squad == nil {
			squad = []player.Player{}
		}
		out = append(out, TeamWithPlayers{Team: item, Players: squad})
	}

	return out, nil
}

func (s *RosterService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreatePlayer", tournamentAttr(input.Slug))
	defer span.End()

	t, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return player.Player{}, err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	teamID := strings.TrimSpace(input.TeamID)
	if _, exists, err := s.teamRepo.GetByID(ctx, t.ID, teamID); err != nil {
		return player.Player{}, fmt.Errorf("get team: %w", err)
	} else if !exists {
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	item := player.New(id, t.ID, teamID, input.Name, s.now().UTC())
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	squad, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("list team players: %w", err)
	}
	for _, p := range squad {
		if sameName(p.Name, item.Name) {
			return player.Player{}, classify(fmt.Errorf("%w: name=%q", player.ErrNameTaken, item.Name))
		}
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, classify(fmt.Errorf("create player: %w", err))
	}

	s.logger.InfoContext(ctx, "player created", "tournament_id", t.ID, "team_id", teamID, "player_id", item.ID)
	return item, nil
}

// ImportRoster creates teams and players from batch text. Team lines naming
// an existing team extend that team, and players already in a squad are
// reused. Everything accepted is stored in one transaction.
func (s *RosterService) ImportRoster(ctx context.Context, input ImportRosterInput) (ImportRosterResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ImportRoster", tournamentAttr(input.Slug))
	defer span.End()

	t, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return ImportRosterResult{}, err
	}
	if strings.TrimSpace(input.Text) == "" {
		return ImportRosterResult{}, invalidInput("roster text is required")
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	plan := roster.Parse(input.Text)
	result := ImportRosterResult{Skipped: append([]roster.Skipped{}, plan.Skipped...)}

	teams, err := s.teamRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return ImportRosterResult{}, fmt.Errorf("list teams: %w", err)
	}
	players, err := s.playerRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return ImportRosterResult{}, fmt.Errorf("list players: %w", err)
	}

	now := s.now().UTC()
	var newTeams []team.Team
	var newPlayers []player.Player
	for _, block := range plan.Teams {
		current, exists := findTeamByName(teams, block.Name)
		if !exists {
			id, err := s.idGen.NewID()
			if err != nil {
				return ImportRosterResult{}, fmt.Errorf("generate team id: %w", err)
			}
			current = team.Team{ID: id, TournamentID: t.ID, Name: block.Name, CreatedAt: now}
			if err := current.Validate(); err != nil {
				result.Skipped = append(result.Skipped, roster.Skipped{Line: block.Line, Text: block.Name, Reason: err.Error()})
				continue
			}
			teams = append(teams, current)
			newTeams = append(newTeams, current)
		}

		for _, name := range block.Players {
			if squadHas(players, current.ID, name) {
				continue
			}
			id, err := s.idGen.NewID()
			if err != nil {
				return ImportRosterResult{}, fmt.Errorf("generate player id: %w", err)
			}
			p := player.New(id, t.ID, current.ID, name, now)
			if err := p.Validate(); err != nil {
				result.Skipped = append(result.Skipped, roster.Skipped{Line: block.Line, Text: "-" + name, Reason: err.Error()})
				continue
			}
			players = append(players, p)
			newPlayers = append(newPlayers, p)
		}
	}

	if len(newTeams) > 0 || len(newPlayers) > 0 {
		if err := s.rosterRepo.Import(ctx, newTeams, newPlayers); err != nil {
			return ImportRosterResult{}, classify(fmt.Errorf("import roster: %w", err))
		}
		s.invalidate(ctx, t.ID)
	}
	sort.SliceStable(result.Skipped, func(i, j int) bool {
		return result.Skipped[i].Line < result.Skipped[j].Line
	})

	result.CreatedTeams = len(newTeams)
	result.CreatedPlayers = len(newPlayers)
	s.logger.InfoContext(ctx, "roster imported",
		"tournament_id", t.ID,
		"created_teams", result.CreatedTeams,
		"created_players", result.CreatedPlayers,
		"skipped", len(result.Skipped),
	)
	return result, nil
}

func (s *RosterService) CreateField(ctx context.Context, input CreateFieldInput) (field.Field, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreateField", tournamentAttr(input.Slug))
	defer span.End()

	t, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return field.Field{}, err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	id, err := s.idGen.NewID()
	if err != nil {
		return field.Field{}, fmt.Errorf("generate field id: %w", err)
	}
	item := field.Field{
		ID:           id,
		TournamentID: t.ID,
		OwnerID:      t.OwnerID,
		Name:         strings.TrimSpace(input.Name),
		CreatedAt:    s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return field.Field{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.fieldRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return field.Field{}, fmt.Errorf("list fields: %w", err)
	}
	for _, f := range existing {
		if sameName(f.Name, item.Name) {
			return field.Field{}, classify(fmt.Errorf("%w: name=%q", field.ErrNameTaken, item.Name))
		}
	}

	if err := s.fieldRepo.Create(ctx, item); err != nil {
		return field.Field{}, classify(fmt.Errorf("create field: %w", err))
	}

	s.logger.InfoContext(ctx, "field created", "tournament_id", t.ID, "field_id", item.ID, "name", item.Name)
	return item, nil
}

func (s *RosterService) ListFields(ctx context.Context, slug string) ([]field.Field, error) {
	t, err := s.access.resolve(ctx, slug)
	if err != nil {
		return nil, err
	}

	items, err := s.fieldRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

// DeleteField removes a field that no match is assigned to.
func (s *RosterService) DeleteField(ctx context.Context, ownerID, slug, fieldID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeleteField", tournamentAttr(slug))
	defer span.End()

	t, err := s.access.resolveOwned(ctx, slug, ownerID)
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	fieldID = strings.TrimSpace(fieldID)
	if _, exists, err := s.fieldRepo.GetByID(ctx, t.ID, fieldID); err != nil {
		return fmt.Errorf("get field: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: field=%s", ErrNotFound, fieldID)
	}

	matches, err := s.matchRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	for _, m := range matches {
		if m.FieldID == fieldID {
			return classify(fmt.Errorf("%w: field=%s match=%s", field.ErrInUse, fieldID, m.ID))
		}
	}

	if err := s.fieldRepo.Delete(ctx, t.ID, fieldID); err != nil {
		return classify(fmt.Errorf("delete field: %w", err))
	}

	s.logger.InfoContext(ctx, "field deleted", "tournament_id", t.ID, "field_id", fieldID)
	return nil
}

func (s *RosterService) invalidate(ctx context.Context, tournamentID string) {
	invalidateStandings(ctx, s.invalidator, tournamentID)
}

func invalidateStandings(ctx context.Context, invalidator standingsInvalidator, tournamentID string) {
	if invalidator != nil {
		invalidator.Invalidate(ctx, tournamentID)
	}
}

func findTeamByName(items []team.Team, name string) (team.Team, bool) {
	for _, item := range items {
		if team.SameName(item.Name, name) {
			return item, true
		}
	}
	return team.Team{}, false
}

func squadHas(players []player.Player, teamID, name string) bool {
	for _, p := range players {
		if p.TeamID == teamID && sameName(p.Name, name) {
			return true
		}
	}
	return false
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
