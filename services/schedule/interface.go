package schedule

import (
	"context"
	"time"

	draftRepo "autosave/database/repository/draft"
	"autosave/models"
	"autosave/services/activity"
	"autosave/services/notification"

	"go.uber.org/zap"
)

// DraftSessionService hosts create-schedule wizards between requests.
type DraftSessionService interface {
	InitiateDraft(ctx context.Context, auth models.AuthSession, fcmToken string) (*models.DraftSession, error)
	GetDraft(ctx context.Context, auth models.AuthSession, draftID string) (*models.DraftSession, error)
	ApplyAction(ctx context.Context, auth models.AuthSession, draftID string, action Action) (*models.DraftSession, error)
	SubmitDraft(ctx context.Context, auth models.AuthSession, draftID string) (*SubmitResult, error)
	CancelDraft(ctx context.Context, auth models.AuthSession, draftID string) error
}

// SubmitResult is returned once a schedule exists on the savings API.
type SubmitResult struct {
	ScheduleID string `json:"scheduleId"`
	Message    string `json:"message"`
}

// DefaultDraftSessionService implements DraftSessionService.
type DefaultDraftSessionService struct {
	Repo      draftRepo.DraftRepository
	Catalog   Catalog
	Submitter *Submitter
	Tracker   activity.Tracker
	Notifier  notification.Notifier
	Logger    *zap.Logger
	Now       func() time.Time
}
