package draft

import (
	"context"
	"errors"

	"autosave/models"
)

// ErrNotFound is returned when a draft does not exist or has expired.
var ErrNotFound = errors.New("draft not found")

// DraftRepository keeps wizard drafts alive between requests. Drafts are
// ephemeral: every write refreshes the TTL and nothing outlives it.
type DraftRepository interface {
	Save(ctx context.Context, session *models.DraftSession) error
	Get(ctx context.Context, id string) (*models.DraftSession, error)
	Delete(ctx context.Context, id string) error

	// AcquireSubmitLock reports whether the caller now owns the submission
	// for id. Only one holder exists at a time.
	AcquireSubmitLock(ctx context.Context, id string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, id string) error
}
