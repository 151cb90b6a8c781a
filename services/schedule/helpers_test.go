package schedule

import (
	"context"
	"sync"
	"time"

	"autosave/models"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)

func day(offset int) *time.Time {
	t := time.Date(2026, 10, 14+offset, 0, 0, 0, 0, time.UTC)
	return &t
}

func dailyPackage(perDay int64, totalCount int) models.SelectablePackage {
	return models.SelectablePackage{
		ID:           "daily-1",
		Type:         models.ContributionDailySavings,
		Title:        "Daily Ajo",
		AmountPerDay: decimal.NewFromInt(perDay),
		TotalCount:   totalCount,
	}
}

func buyingPackage() models.SelectablePackage {
	return models.SelectablePackage{
		ID:    "buy-1",
		Type:  models.ContributionSavingsBuying,
		Title: "New Phone",
	}
}

var testCards = []models.PaymentCard{
	{ID: "card-1", Bank: "GTBank", Last4: "4242"},
	{ID: "card-2", Bank: "Access", Last4: "1111", IsDefault: true},
}

// validState is a wizard on the review step whose every step validates.
func validState() models.WizardState {
	s := NewWizard([]models.SelectablePackage{dailyPackage(1000, 25), buyingPackage()}, testCards)
	s.Step = models.StepSchedule
	s.Draft = models.ScheduleDraft{
		PackageID:        "daily-1",
		ContributionType: models.ContributionDailySavings,
		CardID:           "card-1",
		Amount:           "6000",
		Frequency:        models.FrequencyWeekly,
		StartDate:        day(1),
	}
	return s
}

type fakeCreator struct {
	mu    sync.Mutex
	calls []models.CreateScheduleRequest
	resp  *models.CreateScheduleResponse
	err   error
	gate  chan struct{}
}

func (f *fakeCreator) CreateSchedule(_ context.Context, _ models.AuthSession, req models.CreateScheduleRequest) (*models.CreateScheduleResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &models.CreateScheduleResponse{ID: "sched-1"}, nil
}

func (f *fakeCreator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
