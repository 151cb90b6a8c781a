package schedule

import (
	"strings"
	"time"

	"autosave/models"
)

// ActionType names a wizard interaction.
type ActionType string

const (
	ActionSelectPackage ActionType = "select_package"
	ActionSelectCard    ActionType = "select_card"
	ActionSetAmount     ActionType = "set_amount"
	ActionSetFrequency  ActionType = "set_frequency"
	ActionSetStartDate  ActionType = "set_start_date"
	ActionSetEndDate    ActionType = "set_end_date"
	ActionClearEndDate  ActionType = "clear_end_date"
	ActionAdvance       ActionType = "advance"
	ActionRetreat       ActionType = "retreat"
)

// Action is one tap or keystroke forwarded by the client.
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value,omitempty"`
}

func (t ActionType) Valid() bool {
	switch t {
	case ActionSelectPackage, ActionSelectCard, ActionSetAmount, ActionSetFrequency,
		ActionSetStartDate, ActionSetEndDate, ActionClearEndDate, ActionAdvance, ActionRetreat:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

// ParseDate accepts a calendar date, interpreted at midnight in loc, or an
// RFC 3339 timestamp.
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// NewWizard opens a wizard on step 1 with the supplied packages and cards.
func NewWizard(packages []models.SelectablePackage, cards []models.PaymentCard) models.WizardState {
	return models.WizardState{
		Step:     models.StepSelection,
		Status:   models.StatusEditing,
		Errors:   models.FieldErrors{},
		Packages: packages,
		Cards:    cards,
	}
}

// Reduce applies a to s and returns the resulting state. s is never modified.
// While a submission is in flight or after it succeeded the wizard is frozen.
func Reduce(s models.WizardState, a Action, now time.Time) models.WizardState {
	if s.Status == models.StatusSubmitting || s.Status == models.StatusSucceeded {
		return s
	}

	next := s.Clone()
	if next.Errors == nil {
		next.Errors = models.FieldErrors{}
	}
	if next.Step < models.StepSelection {
		next.Step = models.StepSelection
	}

	switch a.Type {
	case ActionAdvance:
		return Advance(next, now)
	case ActionRetreat:
		return Retreat(next)
	case ActionSelectPackage:
		next.Draft.PackageID = strings.TrimSpace(a.Value)
		next.Draft.ContributionType = ""
		if pkg, ok := next.Package(next.Draft.PackageID); ok {
			next.Draft.ContributionType = pkg.Type
		}
		delete(next.Errors, models.FieldPackageID)
		// A different package can change whether the typed amount is valid.
		delete(next.Errors, models.FieldAmount)
		checkAmountLive(&next)
	case ActionSelectCard:
		next.Draft.CardID = strings.TrimSpace(a.Value)
		delete(next.Errors, models.FieldCardID)
	case ActionSetAmount:
		next.Draft.Amount = a.Value
		delete(next.Errors, models.FieldAmount)
		checkAmountLive(&next)
	case ActionSetFrequency:
		next.Draft.Frequency = models.Frequency(strings.TrimSpace(a.Value))
		delete(next.Errors, models.FieldFrequency)
	case ActionSetStartDate:
		next.Draft.StartDate = setDate(next.Errors, models.FieldStartDate, a.Value, now.Location())
		delete(next.Errors, models.FieldEndDate)
	case ActionSetEndDate:
		if strings.TrimSpace(a.Value) == "" {
			next.Draft.EndDate = nil
			delete(next.Errors, models.FieldEndDate)
			break
		}
		next.Draft.EndDate = setDate(next.Errors, models.FieldEndDate, a.Value, now.Location())
	case ActionClearEndDate:
		next.Draft.EndDate = nil
		delete(next.Errors, models.FieldEndDate)
	default:
		return s
	}

	// Any edit dismisses the last submission failure.
	next.SubmitError = ""
	if next.Status == models.StatusFailed {
		next.Status = models.StatusEditing
	}
	return next
}

// Advance moves to the next step when the current one validates. On failure
// the step's errors are shown and the step is unchanged.
func Advance(s models.WizardState, now time.Time) models.WizardState {
	if s.Step >= models.StepSchedule {
		return s
	}
	errs := ValidateStep(s.Step, s, now)
	s.Errors = errs
	if errs.Empty() {
		s.Step++
	}
	return s
}

// Retreat goes back one step without validating.
func Retreat(s models.WizardState) models.WizardState {
	if s.Step <= models.StepSelection {
		return s
	}
	s.Step--
	s.Errors = models.FieldErrors{}
	return s
}

// checkAmountLive re-runs the daily-savings rule as the amount is typed.
func checkAmountLive(s *models.WizardState) {
	pkg, ok := s.Package(s.Draft.PackageID)
	if !ok || !pkg.IsDailySavings() {
		return
	}
	amount, ok := ParseAmount(s.Draft.Amount)
	if !ok || !amount.IsPositive() {
		return
	}
	if msg := ValidateDailyAmount(amount, pkg); msg != "" {
		s.Errors[models.FieldAmount] = msg
	}
}

func setDate(errs models.FieldErrors, field, raw string, loc *time.Location) *time.Time {
	t, ok := ParseDate(raw, loc)
	if !ok {
		errs[field] = "Please enter a valid date"
		return nil
	}
	delete(errs, field)
	return &t
}
