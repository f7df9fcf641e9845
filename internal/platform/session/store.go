package session

import (
	"context"

	"friendbook/internal/domain/model"
)

// Store is the server-side session manager. Get must treat an expired
// session as absent even if it has not been physically purged yet.
// Destroy is idempotent: destroying an already-gone session is not an
// error.
type Store interface {
	Create(ctx context.Context, id string, sess model.Session) error
	Get(ctx context.Context, id string) (model.Session, bool, error)
	Destroy(ctx context.Context, id string) error
}
