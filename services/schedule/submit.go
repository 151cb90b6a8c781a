package schedule

import (
	"context"
	"encoding/json"
	"time"

	"autosave/models"
	"autosave/services/coreapi"
)

// ScheduleCreator is the savings API call that creates a schedule.
type ScheduleCreator interface {
	CreateSchedule(ctx context.Context, auth models.AuthSession, req models.CreateScheduleRequest) (*models.CreateScheduleResponse, error)
}

// Catalog supplies the packages and cards a wizard is opened with.
type Catalog interface {
	ListPackages(ctx context.Context, auth models.AuthSession) ([]models.SelectablePackage, error)
	ListCards(ctx context.Context, auth models.AuthSession) ([]models.PaymentCard, error)
}

// BuildRequest maps a validated draft onto the savings API payload.
func BuildRequest(d models.ScheduleDraft) models.CreateScheduleRequest {
	req := models.CreateScheduleRequest{
		PackageID:        d.PackageID,
		ContributionType: d.ContributionType,
		CardID:           d.CardID,
		Frequency:        d.Frequency,
	}
	if amount, ok := ParseAmount(d.Amount); ok {
		req.Amount = json.Number(amount.String())
	}
	if d.StartDate != nil {
		req.StartDate = d.StartDate.Format(time.RFC3339)
	}
	if d.EndDate != nil {
		req.EndDate = d.EndDate.Format(time.RFC3339)
	}
	return req
}

// Submitter sends a reviewed draft to the savings API.
type Submitter struct {
	Creator ScheduleCreator
}

// Submit re-validates s and calls the savings API. The returned state is what
// the wizard should show next:
//   - invalid fields: editing, moved to the first failing step, *ValidationError
//   - API failure: failed, still on the review step, draft untouched, *SubmitError
//   - success: succeeded, with the created schedule
func (sub *Submitter) Submit(ctx context.Context, auth models.AuthSession, s models.WizardState, now time.Time) (models.WizardState, *models.CreateScheduleResponse, error) {
	next := s.Clone()

	if s.Status == models.StatusSubmitting {
		return s, nil, ErrSubmissionInFlight
	}
	if s.Step != models.StepSchedule {
		return s, nil, ErrNotOnReviewStep
	}

	// Earlier steps may have been edited since they were passed.
	if errs := ValidateSchedule(s.Draft, now); !errs.Empty() {
		next.Status = models.StatusEditing
		next.Errors = errs
		return next, nil, &ValidationError{Step: models.StepSchedule, Fields: errs}
	}
	if errs, step := ValidateAll(s, now); step != 0 {
		next.Status = models.StatusEditing
		next.Step = step
		next.Errors = ValidateStep(step, s, now)
		return next, nil, &ValidationError{Step: step, Fields: errs}
	}

	resp, err := sub.Creator.CreateSchedule(ctx, auth, BuildRequest(s.Draft))
	if err != nil {
		msg := coreapi.MessageOf(err)
		if msg == "" {
			msg = DefaultSubmitFailure
		}
		next.Status = models.StatusFailed
		next.SubmitError = msg
		next.Errors = models.FieldErrors{}
		return next, nil, &SubmitError{Message: msg, Err: err}
	}

	next.Status = models.StatusSucceeded
	next.SubmitError = ""
	next.Errors = models.FieldErrors{}
	return next, resp, nil
}
