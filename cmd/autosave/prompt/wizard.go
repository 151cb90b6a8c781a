package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"autosave/models"
	"autosave/services/activity"
	"autosave/services/schedule"
	"autosave/utils"
)

// ErrCancelled is returned when the user leaves the wizard without submitting.
var ErrCancelled = errors.New("schedule creation cancelled")

// Navigation choices offered after each step.
const (
	navContinue = "Continue"
	navBack     = "Back"
	navCancel   = "Cancel"
	navSubmit   = "Create schedule"
	navRetry    = "Try again"
	navEdit     = "Edit details"
)

var frequencies = []models.Frequency{models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly}

// fieldOrder fixes the order inline errors are printed in.
var fieldOrder = []string{
	models.FieldPackageID, models.FieldCardID, models.FieldAmount,
	models.FieldFrequency, models.FieldStartDate, models.FieldEndDate,
}

// Wizard runs the create-schedule flow in the terminal. Every change goes
// through schedule.Reduce, so the terminal enforces the same rules as the
// HTTP API.
type Wizard struct {
	Driver    Driver
	Catalog   schedule.Catalog
	Submitter *schedule.Submitter
	Tracker   activity.Tracker
	Now       func() time.Time

	state models.WizardState
	auth  models.AuthSession
	id    string
}

func (w *Wizard) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Wizard) track(ctx context.Context, name string, props map[string]string) {
	if w.Tracker == nil {
		return
	}
	w.Tracker.Track(ctx, models.ActivityEvent{
		UserID:     w.auth.UserID,
		DraftID:    w.id,
		Name:       name,
		Step:       int(w.state.Step),
		Properties: props,
		OccurredAt: w.now(),
	})
}

func (w *Wizard) dispatch(a schedule.Action) {
	w.state = schedule.Reduce(w.state, a, w.now())
}

// Run loads the offer lists and walks the user through every step until the
// schedule is created or the user cancels.
func (w *Wizard) Run(ctx context.Context, auth models.AuthSession) (*models.CreateScheduleResponse, error) {
	packages, err := w.Catalog.ListPackages(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(packages) == 0 {
		return nil, errors.New("no savings packages are available for this account")
	}
	cards, err := w.Catalog.ListCards(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	if len(cards) == 0 {
		return nil, errors.New("add a payment card before creating a schedule")
	}

	w.auth = auth
	w.id = fmt.Sprintf("cli-%d", w.now().UnixNano())
	w.state = schedule.NewWizard(packages, cards)
	w.track(ctx, activity.EventDraftStarted, nil)

	for {
		var (
			resp *models.CreateScheduleResponse
			err  error
		)
		switch w.state.Step {
		case models.StepSelection:
			err = w.selectionStep(ctx)
		case models.StepAmount:
			err = w.amountStep(ctx)
		default:
			resp, err = w.scheduleStep(ctx)
		}
		if errors.Is(err, ErrCancelled) {
			w.track(ctx, activity.EventDraftCancelled, nil)
			return nil, err
		}
		if err != nil || resp != nil {
			return resp, err
		}
	}
}

func (w *Wizard) selectionStep(ctx context.Context) error {
	if err := w.Driver.Info(ctx, "Step 1 of 3: choose a package and card"); err != nil {
		return err
	}

	labels := make([]string, len(w.state.Packages))
	current := 0
	for i, p := range w.state.Packages {
		labels[i] = packageLabel(p)
		if p.ID == w.state.Draft.PackageID {
			current = i
		}
	}
	idx, err := w.Driver.Select(ctx, SelectConfig{Message: "Savings package", Options: labels, DefaultIndex: current})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(w.state.Packages) {
		w.dispatch(schedule.Action{Type: schedule.ActionSelectPackage, Value: w.state.Packages[idx].ID})
	}

	labels = make([]string, len(w.state.Cards))
	current = 0
	for i, c := range w.state.Cards {
		labels[i] = cardLabel(c)
		if c.ID == w.state.Draft.CardID {
			current = i
		}
	}
	idx, err = w.Driver.Select(ctx, SelectConfig{Message: "Payment card", Options: labels, DefaultIndex: current})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(w.state.Cards) {
		w.dispatch(schedule.Action{Type: schedule.ActionSelectCard, Value: w.state.Cards[idx].ID})
	}

	return w.navigate(ctx, false)
}

func (w *Wizard) amountStep(ctx context.Context) error {
	if err := w.Driver.Info(ctx, "Step 2 of 3: amount and frequency"); err != nil {
		return err
	}
	if pkg, ok := w.state.Package(w.state.Draft.PackageID); ok && pkg.IsDailySavings() {
		if err := w.Driver.Info(ctx, dailyHint(pkg)); err != nil {
			return err
		}
	}

	amount, err := w.Driver.Input(ctx, InputConfig{Message: "Amount (₦)", Default: w.state.Draft.Amount})
	if err != nil {
		return err
	}
	w.dispatch(schedule.Action{Type: schedule.ActionSetAmount, Value: amount})
	if msg, ok := w.state.Errors[models.FieldAmount]; ok {
		// Same live feedback the app shows while typing.
		if err := w.Driver.Info(ctx, "  ! "+msg); err != nil {
			return err
		}
	}

	labels := make([]string, len(frequencies))
	current := 0
	for i, f := range frequencies {
		labels[i] = strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == w.state.Draft.Frequency {
			current = i
		}
	}
	idx, err := w.Driver.Select(ctx, SelectConfig{Message: "Frequency", Options: labels, DefaultIndex: current})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(frequencies) {
		w.dispatch(schedule.Action{Type: schedule.ActionSetFrequency, Value: string(frequencies[idx])})
	}

	return w.navigate(ctx, true)
}

func (w *Wizard) scheduleStep(ctx context.Context) (*models.CreateScheduleResponse, error) {
	if w.state.Status != models.StatusFailed {
		if err := w.editDates(ctx); err != nil {
			return nil, err
		}
	}

	for {
		if p, ok := schedule.Preview(w.state.Draft); ok {
			if err := w.Driver.Info(ctx, previewText(p)); err != nil {
				return nil, err
			}
		}

		options := []string{navSubmit, navEdit, navBack, navCancel}
		if w.state.Status == models.StatusFailed {
			options[0] = navRetry
		}
		choice, err := w.choose(ctx, options)
		if err != nil {
			return nil, err
		}
		switch choice {
		case navEdit:
			if err := w.editDates(ctx); err != nil {
				return nil, err
			}
			continue
		case navBack:
			w.dispatch(schedule.Action{Type: schedule.ActionRetreat})
			w.track(ctx, activity.EventStepRetreated, nil)
			return nil, nil
		case navCancel:
			return nil, ErrCancelled
		}

		return w.submit(ctx)
	}
}

func (w *Wizard) editDates(ctx context.Context) error {
	if err := w.Driver.Info(ctx, "Step 3 of 3: schedule"); err != nil {
		return err
	}

	start := schedule.Tomorrow(w.now()).Format("2006-01-02")
	if w.state.Draft.StartDate != nil {
		start = w.state.Draft.StartDate.Format("2006-01-02")
	}
	raw, err := w.Driver.Input(ctx, InputConfig{Message: "Start date (YYYY-MM-DD)", Default: start})
	if err != nil {
		return err
	}
	w.dispatch(schedule.Action{Type: schedule.ActionSetStartDate, Value: raw})

	end := ""
	if w.state.Draft.EndDate != nil {
		end = w.state.Draft.EndDate.Format("2006-01-02")
	}
	raw, err = w.Driver.Input(ctx, InputConfig{Message: "End date (optional, YYYY-MM-DD)", Default: end, Help: "Leave blank to run until you stop it"})
	if err != nil {
		return err
	}
	w.dispatch(schedule.Action{Type: schedule.ActionSetEndDate, Value: raw})

	return w.showErrors(ctx)
}

// submit sends the draft. A validation failure moves the wizard back to the
// offending step; an API failure keeps everything for a retry.
func (w *Wizard) submit(ctx context.Context) (*models.CreateScheduleResponse, error) {
	w.track(ctx, activity.EventSubmitted, nil)
	next, resp, err := w.Submitter.Submit(ctx, w.auth, w.state, w.now())
	w.state = next

	var vErr *schedule.ValidationError
	var subErr *schedule.SubmitError
	switch {
	case err == nil:
		w.track(ctx, activity.EventScheduleCreated, map[string]string{"scheduleId": resp.ID})
		if err := w.Driver.Info(ctx, schedule.SuccessMessage); err != nil {
			return resp, err
		}
		return resp, nil
	case errors.As(err, &vErr):
		return nil, w.showErrors(ctx)
	case errors.As(err, &subErr):
		w.track(ctx, activity.EventSubmitFailed, map[string]string{"message": subErr.Message})
		return nil, w.Driver.Info(ctx, "  ! "+subErr.Message)
	default:
		return nil, err
	}
}

// navigate offers continue/back/cancel after a data-entry step.
func (w *Wizard) navigate(ctx context.Context, canGoBack bool) error {
	options := []string{navContinue}
	if canGoBack {
		options = append(options, navBack)
	}
	options = append(options, navCancel)

	choice, err := w.choose(ctx, options)
	if err != nil {
		return err
	}

	switch choice {
	case navCancel:
		return ErrCancelled
	case navBack:
		w.dispatch(schedule.Action{Type: schedule.ActionRetreat})
		w.track(ctx, activity.EventStepRetreated, nil)
		return nil
	}

	before := w.state.Step
	w.dispatch(schedule.Action{Type: schedule.ActionAdvance})
	if w.state.Step > before {
		w.track(ctx, activity.EventStepAdvanced, nil)
		return nil
	}
	w.track(ctx, activity.EventStepBlocked, nil)
	return w.showErrors(ctx)
}

// choose asks for one of options. An out-of-range answer counts as cancel.
func (w *Wizard) choose(ctx context.Context, options []string) (string, error) {
	idx, err := w.Driver.Select(ctx, SelectConfig{Message: "Next", Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return navCancel, nil
	}
	return options[idx], nil
}

func (w *Wizard) showErrors(ctx context.Context) error {
	for _, field := range fieldOrder {
		if msg, ok := w.state.Errors[field]; ok {
			if err := w.Driver.Info(ctx, "  ! "+msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func packageLabel(p models.SelectablePackage) string {
	label := fmt.Sprintf("%s (%s, balance %s", p.Title, p.Type, utils.FormatNaira(p.CurrentBalance))
	if p.ProgressPercent > 0 {
		label += fmt.Sprintf(", %.0f%% complete", p.ProgressPercent)
	}
	return label + ")"
}

func cardLabel(c models.PaymentCard) string {
	label := fmt.Sprintf("%s •••• %s", c.Bank, c.Last4)
	if c.IsDefault {
		label += " (default)"
	}
	return label
}

func dailyHint(p models.SelectablePackage) string {
	remaining := schedule.CycleDays - p.TotalCount
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%s per day, %d of %d days left in this cycle", utils.FormatNaira(p.AmountPerDay), remaining, schedule.CycleDays)
}

func previewText(p schedule.ContributionPreview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s from %s", p.PerDebit, p.Frequency, p.FirstDebit)
	if p.OpenEnded {
		b.WriteString(" until stopped")
		return b.String()
	}
	fmt.Fprintf(&b, " to %s: %d debits, %s in total", p.LastDebit, p.Debits, p.Total)
	return b.String()
}
