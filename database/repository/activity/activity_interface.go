package activity

import (
	"context"
	"time"

	"autosave/models"
)

// ActivityRepository persists wizard telemetry.
type ActivityRepository interface {
	Insert(ctx context.Context, event models.ActivityEvent) error
	ListByDraft(ctx context.Context, draftID string) ([]models.ActivityEvent, error)
	EnsureIndexes(ctx context.Context) error
}

// RetentionPeriod is how long activity events are kept.
const RetentionPeriod = 90 * 24 * time.Hour
