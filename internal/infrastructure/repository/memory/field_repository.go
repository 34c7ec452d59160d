package memory

import (
	"context"
	"strings"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/cockroachdb/errors"
)

type FieldRepository struct {
	store *Store
}

func NewFieldRepository(store *Store) *FieldRepository {
	return &FieldRepository{store: store}
}

func (r *FieldRepository) ListByTournament(_ context.Context, tournamentID string) ([]field.Field, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return filter(r.store.fields, func(f field.Field) bool { return f.TournamentID == tournamentID }), nil
}

func (r *FieldRepository) GetByID(_ context.Context, tournamentID, id string) (field.Field, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := indexOf(r.store.fields, fieldID, id)
	if idx < 0 || r.store.fields[idx].TournamentID != tournamentID {
		return field.Field{}, false, nil
	}
	return r.store.fields[idx], true, nil
}

func (r *FieldRepository) Create(_ context.Context, item field.Field) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.fields {
		if existing.TournamentID == item.TournamentID &&
			strings.EqualFold(strings.TrimSpace(existing.Name), strings.TrimSpace(item.Name)) {
			return errors.Wrapf(field.ErrNameTaken, "name=%q", item.Name)
		}
	}
	r.store.fields = append(r.store.fields, item)
	return nil
}

func (r *FieldRepository) Delete(_ context.Context, tournamentID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, m := range r.store.matches {
		if m.FieldID == id {
			return errors.Wrapf(field.ErrInUse, "field=%s match=%s", id, m.ID)
		}
	}
	r.store.fields = filter(r.store.fields, func(f field.Field) bool {
		return f.ID != id || f.TournamentID != tournamentID
	})
	return nil
}
