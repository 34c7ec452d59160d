package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
)

// tournamentAccess resolves tournaments by slug and enforces ownership.
type tournamentAccess struct {
	repo tournament.Repository
}

func (a tournamentAccess) resolve(ctx context.Context, slug string) (tournament.Tournament, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return tournament.Tournament{}, invalidInput("tournament slug is required")
	}

	item, exists, err := a.repo.GetBySlug(ctx, slug)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament by slug: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, slug)
	}

	return item, nil
}

func (a tournamentAccess) resolveOwned(ctx context.Context, slug, userID string) (tournament.Tournament, error) {
	if strings.TrimSpace(userID) == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, err := a.resolve(ctx, slug)
	if err != nil {
		return tournament.Tournament{}, err
	}
	if !item.OwnedBy(userID) {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s is not owned by user=%s", ErrForbidden, item.Slug, userID)
	}

	return item, nil
}
