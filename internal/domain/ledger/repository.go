package ledger

import "context"

// Repository persists a changeset atomically: either every row lands or
// none does.
type Repository interface {
	Commit(ctx context.Context, changes Changeset) error
}
