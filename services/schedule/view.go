package schedule

import (
	"time"

	"autosave/models"
)

// DraftView is what a client renders for one wizard.
type DraftView struct {
	ID            string                     `json:"id"`
	Step          models.WizardStep          `json:"step"`
	Status        models.WizardStatus        `json:"status"`
	Draft         models.ScheduleDraft       `json:"draft"`
	Errors        models.FieldErrors         `json:"errors"`
	SubmitError   string                     `json:"submitError,omitempty"`
	CanGoBack     bool                       `json:"canGoBack"`
	CanAdvance    bool                       `json:"canAdvance"`
	SubmitEnabled bool                       `json:"submitEnabled"`
	MinStartDate  string                     `json:"minStartDate"`
	Packages      []models.SelectablePackage `json:"packages"`
	Cards         []models.PaymentCard       `json:"cards"`
	Preview       *ContributionPreview       `json:"preview,omitempty"`
}

// NewDraftView renders session as of now.
func NewDraftView(session *models.DraftSession, now time.Time) DraftView {
	w := session.Wizard
	errs := w.Errors
	if errs == nil {
		errs = models.FieldErrors{}
	}
	busy := w.Status == models.StatusSubmitting || w.Status == models.StatusSucceeded

	v := DraftView{
		ID:            session.ID,
		Step:          w.Step,
		Status:        w.Status,
		Draft:         w.Draft,
		Errors:        errs,
		SubmitError:   w.SubmitError,
		CanGoBack:     !busy && w.Step > models.StepSelection,
		CanAdvance:    !busy && w.Step < models.StepSchedule,
		SubmitEnabled: !busy && w.Step == models.StepSchedule,
		MinStartDate:  Tomorrow(now).Format(dateLayout),
		Packages:      w.Packages,
		Cards:         w.Cards,
	}
	if w.Step == models.StepSchedule {
		if p, ok := Preview(w.Draft); ok {
			v.Preview = &p
		}
	}
	return v
}
