package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	draftRepo "autosave/database/repository/draft"
	"autosave/models"
	"autosave/services/activity"
	"autosave/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultDraftSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultDraftSessionService) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultDraftSessionService) track(ctx context.Context, session *models.DraftSession, name string, props map[string]string) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, models.ActivityEvent{
		UserID:     session.UserID,
		DraftID:    session.ID,
		Name:       name,
		Step:       int(session.Wizard.Step),
		Properties: props,
		OccurredAt: s.now(),
	})
}

// InitiateDraft loads the user's packages and cards and opens a wizard on step 1.
func (s *DefaultDraftSessionService) InitiateDraft(ctx context.Context, auth models.AuthSession, fcmToken string) (*models.DraftSession, error) {
	packages, err := s.Catalog.ListPackages(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	cards, err := s.Catalog.ListCards(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	// Default card first so it is the first choice offered.
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].IsDefault && !cards[j].IsDefault })

	now := s.now()
	session := &models.DraftSession{
		ID:        uuid.New().String(),
		UserID:    auth.UserID,
		FCMToken:  fcmToken,
		Wizard:    NewWizard(packages, cards),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.track(ctx, session, activity.EventDraftStarted, map[string]string{
		"packages": strconv.Itoa(len(packages)),
		"cards":    strconv.Itoa(len(cards)),
	})
	return session, nil
}

// GetDraft returns the caller's draft. Drafts owned by someone else are reported as missing.
func (s *DefaultDraftSessionService) GetDraft(ctx context.Context, auth models.AuthSession, draftID string) (*models.DraftSession, error) {
	session, err := s.Repo.Get(ctx, draftID)
	if errors.Is(err, draftRepo.ErrNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.UserID != auth.UserID {
		return nil, ErrDraftNotFound
	}
	return session, nil
}

// ApplyAction runs one reducer action against the stored draft.
func (s *DefaultDraftSessionService) ApplyAction(ctx context.Context, auth models.AuthSession, draftID string, action Action) (*models.DraftSession, error) {
	if !action.Type.Valid() {
		return nil, ErrUnknownAction
	}
	session, err := s.GetDraft(ctx, auth, draftID)
	if err != nil {
		return nil, err
	}
	if session.Wizard.Status == models.StatusSubmitting && !s.recoverStaleSubmit(ctx, session) {
		return session, ErrSubmissionInFlight
	}

	before := session.Wizard.Step
	session.Wizard = Reduce(session.Wizard, action, s.now())
	session.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, session); err != nil {
		return nil, err
	}

	switch {
	case action.Type == ActionAdvance && session.Wizard.Step > before:
		s.track(ctx, session, activity.EventStepAdvanced, nil)
	case action.Type == ActionAdvance && before < models.StepSchedule:
		s.track(ctx, session, activity.EventStepBlocked, map[string]string{"fields": strconv.Itoa(len(session.Wizard.Errors))})
	case action.Type == ActionRetreat && session.Wizard.Step < before:
		s.track(ctx, session, activity.EventStepRetreated, nil)
	}
	return session, nil
}

// recoverStaleSubmit unfreezes a draft left in the submitting state by a
// submission whose lock has since expired. The outcome of that call is
// unknown, so the draft is marked failed and the user may retry.
func (s *DefaultDraftSessionService) recoverStaleSubmit(ctx context.Context, session *models.DraftSession) bool {
	locked, err := s.Repo.AcquireSubmitLock(ctx, session.ID)
	if err != nil || !locked {
		return false
	}
	if err := s.Repo.ReleaseSubmitLock(ctx, session.ID); err != nil {
		s.log().Warn("failed to release submit lock", zap.String("draftId", session.ID), zap.Error(err))
	}
	session.Wizard.Status = models.StatusFailed
	session.Wizard.SubmitError = DefaultSubmitFailure
	return true
}

// SubmitDraft sends the reviewed draft to the savings API. Only one submission
// per draft runs at a time. On failure the draft is kept for a retry; on
// success it is destroyed.
func (s *DefaultDraftSessionService) SubmitDraft(ctx context.Context, auth models.AuthSession, draftID string) (*SubmitResult, error) {
	session, err := s.GetDraft(ctx, auth, draftID)
	if err != nil {
		return nil, err
	}
	if session.Wizard.Step != models.StepSchedule {
		return nil, ErrNotOnReviewStep
	}

	locked, err := s.Repo.AcquireSubmitLock(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		if err := s.Repo.ReleaseSubmitLock(context.WithoutCancel(ctx), draftID); err != nil {
			s.log().Warn("failed to release submit lock", zap.String("draftId", draftID), zap.Error(err))
		}
	}()

	// Re-read under the lock so a submission that just finished is seen.
	if session, err = s.GetDraft(ctx, auth, draftID); err != nil {
		return nil, err
	}

	submitting := session.Wizard.Clone()
	submitting.Status = models.StatusSubmitting
	submitting.SubmitError = ""
	session.Wizard = submitting
	session.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.track(ctx, session, activity.EventSubmitted, nil)

	// Submit treats a submitting state as a duplicate, so hand it the editable one.
	editable := submitting.Clone()
	editable.Status = models.StatusEditing
	next, resp, submitErr := s.Submitter.Submit(ctx, auth, editable, s.now())

	if submitErr != nil {
		session.Wizard = next
		session.UpdatedAt = s.now()
		if err := s.Repo.Save(context.WithoutCancel(ctx), session); err != nil {
			s.log().Error("failed to persist draft after submit failure", zap.String("draftId", draftID), zap.Error(err))
		}
		var subErr *SubmitError
		if errors.As(submitErr, &subErr) {
			s.track(ctx, session, activity.EventSubmitFailed, map[string]string{"message": subErr.Message})
			s.log().Warn("create schedule failed", zap.String("draftId", draftID), zap.Error(subErr.Err))
		}
		return nil, submitErr
	}

	if err := s.Repo.Delete(context.WithoutCancel(ctx), draftID); err != nil {
		s.log().Warn("failed to discard submitted draft", zap.String("draftId", draftID), zap.Error(err))
	}
	session.Wizard = next
	s.track(ctx, session, activity.EventScheduleCreated, map[string]string{"scheduleId": resp.ID})
	s.notify(ctx, session, resp.ID)

	return &SubmitResult{ScheduleID: resp.ID, Message: SuccessMessage}, nil
}

func (s *DefaultDraftSessionService) notify(ctx context.Context, session *models.DraftSession, scheduleID string) {
	if s.Notifier == nil {
		return
	}
	d := session.Wizard.Draft
	payload := models.ScheduleCreatedPayload{
		UserID:     session.UserID,
		ScheduleID: scheduleID,
		FCMToken:   session.FCMToken,
		Frequency:  string(d.Frequency),
	}
	if pkg, ok := session.Wizard.Package(d.PackageID); ok {
		payload.PackageTitle = pkg.Title
	}
	if amount, ok := ParseAmount(d.Amount); ok {
		payload.Amount = utils.FormatNaira(amount)
	}
	if d.StartDate != nil {
		payload.StartDate = d.StartDate.Format(dateLayout)
	}
	if err := s.Notifier.NotifyScheduleCreated(ctx, payload); err != nil {
		s.log().Warn("failed to queue schedule notification", zap.String("scheduleId", scheduleID), zap.Error(err))
	}
}

// CancelDraft discards the draft, as when the user navigates away.
func (s *DefaultDraftSessionService) CancelDraft(ctx context.Context, auth models.AuthSession, draftID string) error {
	session, err := s.GetDraft(ctx, auth, draftID)
	if err != nil {
		return err
	}
	if session.Wizard.Status == models.StatusSubmitting {
		return ErrSubmissionInFlight
	}
	if err := s.Repo.Delete(ctx, draftID); err != nil {
		return fmt.Errorf("failed to cancel draft: %w", err)
	}
	s.track(ctx, session, activity.EventDraftCancelled, nil)
	return nil
}
