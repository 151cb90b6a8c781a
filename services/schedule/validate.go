package schedule

import (
	"strings"
	"time"

	"autosave/models"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a typed amount. Thousands separators are tolerated.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// Tomorrow is the earliest allowed start date: local midnight after now.
func Tomorrow(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// ValidateStep runs the validator for step. Unknown steps validate clean.
func ValidateStep(step models.WizardStep, s models.WizardState, now time.Time) models.FieldErrors {
	switch step {
	case models.StepSelection:
		return ValidateSelection(s)
	case models.StepAmount:
		return ValidateAmount(s)
	case models.StepSchedule:
		return ValidateSchedule(s.Draft, now)
	}
	return models.FieldErrors{}
}

// ValidateSelection requires an offered package and an offered card.
func ValidateSelection(s models.WizardState) models.FieldErrors {
	errs := models.FieldErrors{}
	d := s.Draft

	switch {
	case d.PackageID == "":
		errs[models.FieldPackageID] = "Please select a savings package"
	case len(s.Packages) > 0:
		if _, ok := s.Package(d.PackageID); !ok {
			errs[models.FieldPackageID] = "Selected package is not available"
		}
	}

	switch {
	case d.CardID == "":
		errs[models.FieldCardID] = "Please select a payment card"
	case len(s.Cards) > 0:
		if _, ok := s.Card(d.CardID); !ok {
			errs[models.FieldCardID] = "Selected card is not available"
		}
	}
	return errs
}

// ValidateAmount checks amount and frequency, applying the daily-savings rule
// when the selected package needs it.
func ValidateAmount(s models.WizardState) models.FieldErrors {
	errs := models.FieldErrors{}
	d := s.Draft

	if strings.TrimSpace(d.Amount) == "" {
		errs[models.FieldAmount] = "Please enter an amount"
	} else if amount, ok := ParseAmount(d.Amount); !ok {
		errs[models.FieldAmount] = "Please enter a valid amount"
	} else if !amount.IsPositive() {
		errs[models.FieldAmount] = "Amount must be greater than zero"
	} else if pkg, ok := s.Package(d.PackageID); ok && pkg.IsDailySavings() {
		if msg := ValidateDailyAmount(amount, pkg); msg != "" {
			errs[models.FieldAmount] = msg
		}
	}

	if d.Frequency == "" || !d.Frequency.Valid() {
		errs[models.FieldFrequency] = "Please select a frequency"
	}
	return errs
}

// ValidateSchedule checks the start and optional end date.
func ValidateSchedule(d models.ScheduleDraft, now time.Time) models.FieldErrors {
	errs := models.FieldErrors{}

	if d.StartDate == nil {
		errs[models.FieldStartDate] = "Please select a start date"
	} else if d.StartDate.Before(Tomorrow(now)) {
		errs[models.FieldStartDate] = "Start date must be at least tomorrow"
	}

	if d.EndDate != nil && d.StartDate != nil && !d.EndDate.After(*d.StartDate) {
		errs[models.FieldEndDate] = "End date must be after start date"
	}
	return errs
}

// ValidateAll runs every step and returns the merged errors along with the
// first step that failed (0 when everything passed).
func ValidateAll(s models.WizardState, now time.Time) (models.FieldErrors, models.WizardStep) {
	all := models.FieldErrors{}
	var first models.WizardStep
	for _, step := range []models.WizardStep{models.StepSelection, models.StepAmount, models.StepSchedule} {
		errs := ValidateStep(step, s, now)
		if errs.Empty() {
			continue
		}
		if first == 0 {
			first = step
		}
		all.Merge(errs)
	}
	return all, first
}
