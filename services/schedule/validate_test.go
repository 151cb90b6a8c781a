package schedule

import (
	"testing"
	"time"

	"autosave/models"

	"github.com/stretchr/testify/assert"
)

func TestTomorrow(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	now := time.Date(2026, 10, 14, 23, 59, 0, 0, lagos)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, lagos), Tomorrow(now))

	endOfMonth := time.Date(2026, 10, 31, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), Tomorrow(endOfMonth))
}

func TestParseAmount(t *testing.T) {
	a, ok := ParseAmount(" 15,500 ")
	assert.True(t, ok)
	assert.Equal(t, "15500", a.String())

	_, ok = ParseAmount("")
	assert.False(t, ok)
	_, ok = ParseAmount("12abc")
	assert.False(t, ok)
}

func TestValidateSelection(t *testing.T) {
	s := validState()
	assert.Empty(t, ValidateSelection(s))

	s.Draft.PackageID = ""
	s.Draft.CardID = ""
	errs := ValidateSelection(s)
	assert.Equal(t, "Please select a savings package", errs[models.FieldPackageID])
	assert.Equal(t, "Please select a payment card", errs[models.FieldCardID])

	s.Draft.PackageID = "gone"
	s.Draft.CardID = "gone"
	errs = ValidateSelection(s)
	assert.Equal(t, "Selected package is not available", errs[models.FieldPackageID])
	assert.Equal(t, "Selected card is not available", errs[models.FieldCardID])
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		packageID string
		amount    string
		frequency models.Frequency
		want      models.FieldErrors
	}{
		{"valid daily", "daily-1", "6000", models.FrequencyDaily, models.FieldErrors{}},
		{"missing amount", "buy-1", "", models.FrequencyDaily, models.FieldErrors{models.FieldAmount: "Please enter an amount"}},
		{"garbage amount", "buy-1", "ten", models.FrequencyDaily, models.FieldErrors{models.FieldAmount: "Please enter a valid amount"}},
		{"zero amount", "buy-1", "0", models.FrequencyDaily, models.FieldErrors{models.FieldAmount: "Amount must be greater than zero"}},
		{"negative amount", "buy-1", "-50", models.FrequencyDaily, models.FieldErrors{models.FieldAmount: "Amount must be greater than zero"}},
		{"missing frequency", "buy-1", "1500", "", models.FieldErrors{models.FieldFrequency: "Please select a frequency"}},
		{"unknown frequency", "buy-1", "1500", "yearly", models.FieldErrors{models.FieldFrequency: "Please select a frequency"}},
		{"buying ignores daily rule", "buy-1", "1500", models.FrequencyMonthly, models.FieldErrors{}},
		{"daily rule surfaces under amount", "daily-1", "1500", models.FrequencyDaily, models.FieldErrors{models.FieldAmount: "Amount must be a multiple of ₦1,000"}},
		{"daily cycle cap", "daily-1", "7000", models.FrequencyDaily, models.FieldErrors{models.FieldAmount: "Max: ₦6,000 (6 days remaining in cycle)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validState()
			s.Draft.PackageID = tt.packageID
			s.Draft.Amount = tt.amount
			s.Draft.Frequency = tt.frequency
			assert.Equal(t, tt.want, ValidateAmount(s))
		})
	}
}

func TestValidateScheduleStartDate(t *testing.T) {
	d := validState().Draft

	d.StartDate = nil
	assert.Equal(t, "Please select a start date", ValidateSchedule(d, testNow)[models.FieldStartDate])

	d.StartDate = day(0)
	assert.Equal(t, "Start date must be at least tomorrow", ValidateSchedule(d, testNow)[models.FieldStartDate])

	d.StartDate = day(1)
	assert.Empty(t, ValidateSchedule(d, testNow))
}

func TestValidateScheduleEndDate(t *testing.T) {
	d := validState().Draft
	d.StartDate = day(3)

	d.EndDate = day(3)
	assert.Equal(t, "End date must be after start date", ValidateSchedule(d, testNow)[models.FieldEndDate])

	d.EndDate = day(2)
	assert.Equal(t, "End date must be after start date", ValidateSchedule(d, testNow)[models.FieldEndDate])

	d.EndDate = day(4)
	assert.Empty(t, ValidateSchedule(d, testNow))
}

func TestValidateAll(t *testing.T) {
	s := validState()
	errs, step := ValidateAll(s, testNow)
	assert.Empty(t, errs)
	assert.Equal(t, models.WizardStep(0), step)

	s.Draft.Amount = "1500"
	s.Draft.StartDate = day(0)
	errs, step = ValidateAll(s, testNow)
	assert.Equal(t, models.StepAmount, step)
	assert.Contains(t, errs, models.FieldAmount)
	assert.Contains(t, errs, models.FieldStartDate)
}

func TestValidateStepUnknown(t *testing.T) {
	assert.Empty(t, ValidateStep(models.WizardStep(9), models.WizardState{}, testNow))
}
