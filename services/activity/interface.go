package activity

import (
	"context"

	"autosave/models"
)

// Event names emitted by the create-schedule wizard.
const (
	EventDraftStarted    = "schedule_draft_started"
	EventStepAdvanced    = "schedule_step_advanced"
	EventStepBlocked     = "schedule_step_blocked"
	EventStepRetreated   = "schedule_step_retreated"
	EventSubmitted       = "schedule_submitted"
	EventSubmitFailed    = "schedule_submit_failed"
	EventScheduleCreated = "schedule_created"
	EventDraftCancelled  = "schedule_draft_cancelled"
)

// Tracker records user activity. Tracking never fails the caller's operation.
type Tracker interface {
	Track(ctx context.Context, event models.ActivityEvent)
}
