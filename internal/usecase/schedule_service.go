package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/schedule"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	idgen "github.com/VeselinMar/TournamentManager/internal/platform/id"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
)

type GenerateScheduleInput struct {
	OwnerID              string
	Slug                 string
	StartTime            time.Time
	GameDurationMinutes  int
	PauseDurationMinutes int
}

type DelayMatchInput struct {
	OwnerID      string
	Slug         string
	MatchID      string
	NewStartTime time.Time
}

type ScheduleService struct {
	access    tournamentAccess
	teamRepo  team.Repository
	fieldRepo field.Repository
	matchRepo match.Repository
	standings standingsInvalidator
	live      LivePublisher
	locks     *resilience.KeyedMutex
	idGen     idgen.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewScheduleService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	fieldRepo field.Repository,
	matchRepo match.Repository,
	invalidator standingsInvalidator,
	live LivePublisher,
	locks *resilience.KeyedMutex,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}

	return &ScheduleService{
		access:    tournamentAccess{repo: tournamentRepo},
		teamRepo:  teamRepo,
		fieldRepo: fieldRepo,
		matchRepo: matchRepo,
		standings: invalidator,
		live:      livePublisherOrNoop(live),
		locks:     locks,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate creates a full round robin for the tournament's teams and lays it
// out on its fields. The new matches are stored together or not at all.
func (s *ScheduleService) Generate(ctx context.Context, input GenerateScheduleInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Generate", tournamentAttr(input.Slug))
	defer span.End()

	if input.StartTime.IsZero() {
		return nil, invalidInput("start time is required")
	}
	if input.GameDurationMinutes < 1 {
		return nil, invalidInput("game duration must be at least one minute")
	}
	if input.PauseDurationMinutes < 0 {
		return nil, invalidInput("pause duration cannot be negative")
	}

	t, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	teams, err := s.teamRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) < 2 {
		return nil, invalidInput("at least two teams are required, got %d", len(teams))
	}
	fields, err := s.fieldRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	teamIDs := make([]string, 0, len(teams))
	for _, item := range teams {
		teamIDs = append(teamIDs, item.ID)
	}

	generated, err := schedule.Build(schedule.RoundRobin(teamIDs), fields, schedule.Options{
		TournamentID: t.ID,
		Start:        input.StartTime.UTC(),
		Duration:     time.Duration(input.GameDurationMinutes) * time.Minute,
		Pause:        time.Duration(input.PauseDurationMinutes) * time.Minute,
		NewID:        s.idGen.NewID,
		Now:          s.now().UTC(),
	})
	if err != nil {
		return nil, classify(err)
	}

	existing, err := s.matchRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if a, b, clash := match.FindSlotConflict(append(existing, generated...)); clash {
		return nil, classify(fmt.Errorf("%w: generated match %s collides with %s on field %s",
			match.ErrSlotTaken, b.ID, a.ID, a.FieldID))
	}

	if err := s.matchRepo.Create(ctx, generated...); err != nil {
		return nil, classify(fmt.Errorf("create scheduled matches: %w", err))
	}
	invalidateStandings(ctx, s.standings, t.ID)

	s.live.Publish(ctx, LiveEvent{
		Type:       LiveScheduleGenerated,
		Tournament: t.Slug,
		Payload:    LiveSchedulePayload{MatchIDs: matchIDs(generated)},
	})
	s.logger.InfoContext(ctx, "schedule generated",
		"tournament_id", t.ID,
		"teams", len(teams),
		"fields", len(fields),
		"matches", len(generated),
	)
	return generated, nil
}

// Delay moves a match and shifts every later match of the tournament by the
// same amount. It returns the matches that moved.
func (s *ScheduleService) Delay(ctx context.Context, input DelayMatchInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Delay", tournamentAttr(input.Slug))
	defer span.End()

	if input.NewStartTime.IsZero() {
		return nil, invalidInput("new start time is required")
	}
	t, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(t.ID)
	defer unlock()

	matchID := strings.TrimSpace(input.MatchID)
	target, exists, err := s.matchRepo.GetByID(ctx, t.ID, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	matches, err := s.matchRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	changed, err := schedule.Propagate(matches, target.ID, input.NewStartTime.UTC(), s.now().UTC())
	if err != nil {
		return nil, classify(err)
	}
	if len(changed) == 0 {
		return []match.Match{}, nil
	}

	if err := s.matchRepo.UpdateStartTimes(ctx, t.ID, changed); err != nil {
		return nil, classify(fmt.Errorf("update start times: %w", err))
	}

	s.live.Publish(ctx, LiveEvent{
		Type:       LiveScheduleDelayed,
		Tournament: t.Slug,
		Payload:    LiveSchedulePayload{MatchIDs: matchIDs(changed)},
	})
	s.logger.InfoContext(ctx, "match delayed",
		"tournament_id", t.ID,
		"match_id", target.ID,
		"delta", input.NewStartTime.Sub(target.StartTime).String(),
		"shifted", len(changed),
	)
	return changed, nil
}

func matchIDs(items []match.Match) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
