package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/standings"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	idgen "github.com/VeselinMar/TournamentManager/internal/platform/id"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

const maxSlugAttempts = 50

type CreateTournamentInput struct {
	OwnerID string
	Name    string
}

type UpdateTournamentInput struct {
	OwnerID    string
	Slug       string
	Name       *string
	IsFinished *bool
}

// MyTournaments lists the caller's tournaments and marks the one a fresh
// session should land on.
type MyTournaments struct {
	Items    []tournament.Tournament
	ActiveID string
}

type TournamentOverview struct {
	Tournament      tournament.Tournament
	Leader          *standings.Row
	TopScorer       *standings.Scorer
	FinishedMatches int
	TotalMatches    int
	Err             error
}

type standingsReader interface {
	ForTournament(ctx context.Context, item tournament.Tournament, top int) (standings.Table, error)
}

type TournamentService struct {
	repo      tournament.Repository
	access    tournamentAccess
	standings standingsReader
	idGen     idgen.Generator
	workers   int
	logger    *logging.Logger
	now       func() time.Time
	create    sync.Mutex
}

func NewTournamentService(
	repo tournament.Repository,
	standingsReader standingsReader,
	idGen idgen.Generator,
	workers int,
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = 4
	}

	return &TournamentService{
		repo:      repo,
		access:    tournamentAccess{repo: repo},
		standings: standingsReader,
		idGen:     idGen,
		workers:   workers,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.Name = strings.TrimSpace(input.Name)
	if input.OwnerID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: owner id is required", ErrUnauthorized)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("generate tournament id: %w", err)
	}
	now := s.now().UTC()
	item := tournament.Tournament{
		ID:        id,
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Slug probing and insert run under one lock so two creations with the
	// same name in this process do not race for the same suffix. The
	// unique index still guards other processes.
	s.create.Lock()
	defer s.create.Unlock()

	base := tournament.Slugify(input.Name)
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		item.Slug = tournament.CandidateSlug(base, attempt)
		if err := item.Validate(); err != nil {
			return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		_, taken, err := s.repo.GetBySlug(ctx, item.Slug)
		if err != nil {
			return tournament.Tournament{}, fmt.Errorf("check tournament slug: %w", err)
		}
		if taken {
			continue
		}

		err = s.repo.Create(ctx, item)
		if errors.Is(err, tournament.ErrSlugTaken) {
			continue
		}
		if err != nil {
			return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
		}

		s.logger.InfoContext(ctx, "tournament created", "tournament_id", item.ID, "slug", item.Slug, "owner_id", item.OwnerID)
		return item, nil
	}

	return tournament.Tournament{}, fmt.Errorf("%w: no free slug for %q", ErrConflict, input.Name)
}

func (s *TournamentService) Get(ctx context.Context, slug string) (tournament.Tournament, error) {
	return s.access.resolve(ctx, slug)
}

// Update renames or (un)finishes a tournament. The slug never changes.
func (s *TournamentService) Update(ctx context.Context, input UpdateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Update", tournamentAttr(input.Slug))
	defer span.End()

	item, err := s.access.resolveOwned(ctx, input.Slug, input.OwnerID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	if input.Name == nil && input.IsFinished == nil {
		return tournament.Tournament{}, invalidInput("nothing to update")
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.IsFinished != nil {
		item.IsFinished = *input.IsFinished
	}
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return tournament.Tournament{}, fmt.Errorf("update tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament updated", "tournament_id", item.ID, "name", item.Name, "is_finished", item.IsFinished)
	return item, nil
}

func (s *TournamentService) ListMine(ctx context.Context, ownerID string) (MyTournaments, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return MyTournaments{}, fmt.Errorf("%w: owner id is required", ErrUnauthorized)
	}

	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return MyTournaments{}, fmt.Errorf("list tournaments by owner: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	out := MyTournaments{Items: items}
	if active, ok := tournament.FirstActive(items); ok {
		out.ActiveID = active.ID
	}
	return out, nil
}

// Overview computes a short standings summary for every tournament the
// owner runs, in parallel. A failing tournament reports its error in place
// instead of failing the whole overview.
func (s *TournamentService) Overview(ctx context.Context, ownerID string) ([]TournamentOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Overview")
	defer span.End()

	mine, err := s.ListMine(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(mine.Items) == 0 || s.standings == nil {
		return []TournamentOverview{}, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(mine.Items)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]TournamentOverview, len(mine.Items))
	var workers sync.WaitGroup
	for i, item := range mine.Items {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[i] = s.overviewOf(ctx, item)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit overview task: %w", err)
		}
	}
	workers.Wait()

	for _, row := range out {
		if row.Err != nil {
			s.logger.WarnContext(ctx, "tournament overview failed", "tournament_id", row.Tournament.ID, "error", row.Err)
		}
	}
	return out, nil
}

func (s *TournamentService) overviewOf(ctx context.Context, item tournament.Tournament) TournamentOverview {
	row := TournamentOverview{Tournament: item}
	table, err := s.standings.ForTournament(ctx, item, 1)
	if err != nil {
		row.Err = err
		return row
	}

	if leader, ok := table.Leader(); ok {
		row.Leader = &leader
	}
	if len(table.TopScorers) > 0 {
		top := table.TopScorers[0]
		row.TopScorer = &top
	}
	row.FinishedMatches = table.FinishedMatches
	row.TotalMatches = table.TotalMatches
	return row
}
