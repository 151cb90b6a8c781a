package activity

import (
	"context"
	"time"

	activityRepo "autosave/database/repository/activity"
	"autosave/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stamp fills in the id and timestamp when the caller left them empty.
func stamp(event models.ActivityEvent) models.ActivityEvent {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	return event
}

// LogTracker writes events to the structured log.
type LogTracker struct {
	Logger *zap.Logger
}

func (t *LogTracker) Track(_ context.Context, event models.ActivityEvent) {
	event = stamp(event)
	t.Logger.Info("activity",
		zap.String("event", event.Name),
		zap.String("userId", event.UserID),
		zap.String("draftId", event.DraftID),
		zap.Int("step", event.Step),
		zap.Any("properties", event.Properties),
	)
}

// RepoTracker persists events. Storage failures are logged and swallowed.
type RepoTracker struct {
	Repo   activityRepo.ActivityRepository
	Logger *zap.Logger
}

func (t *RepoTracker) Track(ctx context.Context, event models.ActivityEvent) {
	event = stamp(event)
	if err := t.Repo.Insert(ctx, event); err != nil {
		t.Logger.Warn("activity event not stored", zap.String("event", event.Name), zap.Error(err))
	}
}

// Multi fans an event out to every tracker.
type Multi []Tracker

func (m Multi) Track(ctx context.Context, event models.ActivityEvent) {
	event = stamp(event)
	for _, t := range m {
		t.Track(ctx, event)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Track(context.Context, models.ActivityEvent) {}
