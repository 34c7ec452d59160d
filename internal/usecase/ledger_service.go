package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/ledger"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	idgen "github.com/VeselinMar/TournamentManager/internal/platform/id"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
)

type TeamSide string

const (
	SideHome TeamSide = "home"
	SideAway TeamSide = "away"
)

type CreateEventInput struct {
	OwnerID            string
	Slug               string
	MatchID            string
	Type               string
	Side               TeamSide
	PlayerID           string
	SubstitutePlayerID string
	Minute             int
}

type CreateEventResult struct {
	Event     matchevent.Event
	HomeScore int
	AwayScore int
	Summary   string
}

type DeleteEventResult struct {
	MatchID   string
	HomeScore int
	AwayScore int
}

// LedgerService records and withdraws match events and finishes matches.
// Every operation loads the match state, lets the ledger compute the full
// changeset and commits it in one transaction while holding the
// tournament lock.
type LedgerService struct {
	access      tournamentAccess
	teamRepo    team.Repository
	playerRepo  player.Repository
	matchRepo   match.Repository
	eventRepo   matchevent.Repository
	ledgerRepo  ledger.Repository
	invalidator standingsInvalidator
	live        LivePublisher
	locks       *resilience.KeyedMutex
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewLedgerService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	ledgerRepo ledger.Repository,
	invalidator standingsInvalidator,
	live LivePublisher,
	locks *resilience.KeyedMutex,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LedgerService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}

	return &LedgerService{
		access:      tournamentAccess{repo: tournamentRepo},
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		eventRepo:   eventRepo,
		ledgerRepo:  ledgerRepo,
		invalidator: invalidator,
		live:        livePublisherOrNoop(live),
		locks:       locks,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *LedgerService) CreateEvent(ctx context.Context, input CreateEventInput) (CreateEventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.CreateEvent", tournamentAttr(input.Slug))
	defer span.End()

	eventType, err := matchevent.ParseType(input.Type)
	if err != nil {
		return CreateEventResult{}, classify(err)
	}
	t, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return CreateEventResult{}, err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	state, err := s.loadState(ctx, t.ID, input.MatchID)
	if err != nil {
		return CreateEventResult{}, err
	}

	var teamID string
	switch TeamSide(strings.ToLower(strings.TrimSpace(string(input.Side)))) {
	case SideHome:
		teamID = state.Match.HomeTeamID
	case SideAway:
		teamID = state.Match.AwayTeamID
	default:
		return CreateEventResult{}, invalidInput("team side must be home or away, got %q", input.Side)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return CreateEventResult{}, fmt.Errorf("generate event id: %w", err)
	}
	e := matchevent.Event{
		ID:                 id,
		TournamentID:       t.ID,
		MatchID:            state.Match.ID,
		TeamID:             teamID,
		PlayerID:           strings.TrimSpace(input.PlayerID),
		SubstitutePlayerID: strings.TrimSpace(input.SubstitutePlayerID),
		Type:               eventType,
		Minute:             input.Minute,
		CreatedAt:          s.now().UTC(),
	}

	changes, err := ledger.ApplyEvent(state, e)
	if err != nil {
		s.logger.WarnContext(ctx, "match event refused", "tournament_id", t.ID, "match_id", state.Match.ID, "type", e.Type, "error", err)
		return CreateEventResult{}, classify(err)
	}
	if err := s.commit(ctx, changes); err != nil {
		return CreateEventResult{}, err
	}

	summary := matchevent.Summary(e, matchevent.Names{
		Player:     state.Players[e.PlayerID].Name,
		Substitute: state.Players[e.SubstitutePlayerID].Name,
		Team:       teamName(state, teamID),
	})
	s.afterCommit(ctx, t, changes, LiveMatchUpdated, summary)

	s.logger.InfoContext(ctx, "match event recorded",
		"tournament_id", t.ID,
		"match_id", changes.Match.ID,
		"event_id", e.ID,
		"type", e.Type,
		"changes", changes.String(),
	)
	return CreateEventResult{
		Event:     e,
		HomeScore: changes.Match.HomeScore,
		AwayScore: changes.Match.AwayScore,
		Summary:   summary,
	}, nil
}

// DeleteEvent withdraws an event. On a finished match the awarded points are
// reversed and recomputed from the remaining events.
func (s *LedgerService) DeleteEvent(ctx context.Context, ownerID, slug, eventID string) (DeleteEventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.DeleteEvent", tournamentAttr(slug))
	defer span.End()

	t, err := s.access.resolveOwned(ctx, slug, ownerID)
	if err != nil {
		return DeleteEventResult{}, err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	eventID = strings.TrimSpace(eventID)
	e, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return DeleteEventResult{}, fmt.Errorf("get match event: %w", err)
	}
	if !exists || e.TournamentID != t.ID {
		return DeleteEventResult{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	state, err := s.loadState(ctx, t.ID, e.MatchID)
	if err != nil {
		return DeleteEventResult{}, err
	}
	changes, err := ledger.RemoveEvent(state, e.ID)
	if err != nil {
		return DeleteEventResult{}, classify(err)
	}
	if err := s.commit(ctx, changes); err != nil {
		return DeleteEventResult{}, err
	}
	s.afterCommit(ctx, t, changes, LiveMatchUpdated, "")

	s.logger.InfoContext(ctx, "match event removed",
		"tournament_id", t.ID,
		"match_id", changes.Match.ID,
		"event_id", e.ID,
		"changes", changes.String(),
	)
	return DeleteEventResult{
		MatchID:   changes.Match.ID,
		HomeScore: changes.Match.HomeScore,
		AwayScore: changes.Match.AwayScore,
	}, nil
}

// FinishMatch closes a match and awards points. Finishing a finished match
// returns it unchanged.
func (s *LedgerService) FinishMatch(ctx context.Context, ownerID, slug, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.FinishMatch", tournamentAttr(slug))
	defer span.End()

	t, err := s.access.resolveOwned(ctx, slug, ownerID)
	if err != nil {
		return match.Match{}, err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	state, err := s.loadState(ctx, t.ID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	changes, changed := ledger.Finish(state)
	if !changed {
		return state.Match, nil
	}
	if err := s.commit(ctx, changes); err != nil {
		return match.Match{}, err
	}
	s.afterCommit(ctx, t, changes, LiveMatchFinished, "")

	s.logger.InfoContext(ctx, "match finished",
		"tournament_id", t.ID,
		"match_id", changes.Match.ID,
		"home_score", changes.Match.HomeScore,
		"away_score", changes.Match.AwayScore,
	)
	return changes.Match, nil
}

func (s *LedgerService) loadState(ctx context.Context, tournamentID, matchID string) (ledger.MatchState, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return ledger.MatchState{}, invalidInput("match id is required")
	}

	m, exists, err := s.matchRepo.GetByID(ctx, tournamentID, matchID)
	if err != nil {
		return ledger.MatchState{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return ledger.MatchState{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	home, exists, err := s.teamRepo.GetByID(ctx, tournamentID, m.HomeTeamID)
	if err != nil {
		return ledger.MatchState{}, fmt.Errorf("get home team: %w", err)
	}
	if !exists {
		return ledger.MatchState{}, fmt.Errorf("%w: team=%s", ErrNotFound, m.HomeTeamID)
	}
	away, exists, err := s.teamRepo.GetByID(ctx, tournamentID, m.AwayTeamID)
	if err != nil {
		return ledger.MatchState{}, fmt.Errorf("get away team: %w", err)
	}
	if !exists {
		return ledger.MatchState{}, fmt.Errorf("%w: team=%s", ErrNotFound, m.AwayTeamID)
	}

	events, err := s.eventRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return ledger.MatchState{}, fmt.Errorf("list match events: %w", err)
	}

	players := make(map[string]player.Player)
	for _, teamID := range []string{home.ID, away.ID} {
		squad, err := s.playerRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return ledger.MatchState{}, fmt.Errorf("list team players: %w", err)
		}
		for _, p := range squad {
			players[p.ID] = p
		}
	}

	return ledger.MatchState{Match: m, Home: home, Away: away, Events: events, Players: players}, nil
}

func (s *LedgerService) commit(ctx context.Context, changes ledger.Changeset) error {
	changes.Match.UpdatedAt = s.now().UTC()
	if err := s.ledgerRepo.Commit(ctx, changes); err != nil {
		s.logger.ErrorContext(ctx, "ledger commit failed", "match_id", changes.Match.ID, "error", err)
		return classify(fmt.Errorf("commit ledger changes: %w", err))
	}
	return nil
}

func (s *LedgerService) afterCommit(ctx context.Context, t tournament.Tournament, changes ledger.Changeset, kind LiveEventType, summary string) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, t.ID)
	}
	s.live.Publish(ctx, LiveEvent{
		Type:       kind,
		Tournament: t.Slug,
		Payload: LiveScorePayload{
			MatchID:    changes.Match.ID,
			HomeScore:  changes.Match.HomeScore,
			AwayScore:  changes.Match.AwayScore,
			IsFinished: changes.Match.IsFinished,
			Summary:    summary,
		},
	})
}

func teamName(state ledger.MatchState, teamID string) string {
	switch teamID {
	case state.Home.ID:
		return state.Home.Name
	case state.Away.ID:
		return state.Away.Name
	}
	return ""
}
