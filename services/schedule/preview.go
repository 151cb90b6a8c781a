package schedule

import (
	"time"

	"autosave/models"
	"autosave/utils"

	"github.com/shopspring/decimal"
)

// ContributionPreview summarises what a schedule will debit, for the review step.
type ContributionPreview struct {
	PerDebit   string `json:"perDebit"`
	Frequency  string `json:"frequency"`
	FirstDebit string `json:"firstDebit"`
	LastDebit  string `json:"lastDebit,omitempty"`
	Debits     int    `json:"debits,omitempty"`
	Total      string `json:"total,omitempty"`
	OpenEnded  bool   `json:"openEnded"`
}

// nextDebit returns the i-th debit date after start. Each date is derived from
// start so month-end starts do not drift.
func nextDebit(start time.Time, f models.Frequency, i int) time.Time {
	switch f {
	case models.FrequencyWeekly:
		return start.AddDate(0, 0, 7*i)
	case models.FrequencyMonthly:
		return start.AddDate(0, i, 0)
	default:
		return start.AddDate(0, 0, i)
	}
}

// CountDebits counts debit dates from start through end inclusive. The count is
// estimated from the calendar distance and then corrected against nextDebit, so
// far-off end dates cost no more than near ones.
func CountDebits(start, end time.Time, f models.Frequency) int {
	if end.Before(start) {
		return 0
	}
	n := approxIntervals(start, end, f) + 1
	for n > 1 && nextDebit(start, f, n-1).After(end) {
		n--
	}
	for !nextDebit(start, f, n).After(end) {
		n++
	}
	return n
}

// approxIntervals is the number of whole intervals between the calendar
// dates of start and end.
func approxIntervals(start, end time.Time, f models.Frequency) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if f == models.FrequencyMonthly {
		return (ey-sy)*12 + int(em-sm)
	}
	from := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	days := int(to.Sub(from).Hours() / 24)
	if f == models.FrequencyWeekly {
		return days / 7
	}
	return days
}

// Preview builds the review summary. It reports false until amount, frequency
// and start date are usable.
func Preview(d models.ScheduleDraft) (ContributionPreview, bool) {
	amount, ok := ParseAmount(d.Amount)
	if !ok || !amount.IsPositive() || !d.Frequency.Valid() || d.StartDate == nil {
		return ContributionPreview{}, false
	}

	p := ContributionPreview{
		PerDebit:   utils.FormatNaira(amount),
		Frequency:  string(d.Frequency),
		FirstDebit: d.StartDate.Format(dateLayout),
		OpenEnded:  d.EndDate == nil,
	}
	if d.EndDate == nil || d.EndDate.Before(*d.StartDate) {
		return p, true
	}

	p.Debits = CountDebits(*d.StartDate, *d.EndDate, d.Frequency)
	p.LastDebit = nextDebit(*d.StartDate, d.Frequency, p.Debits-1).Format(dateLayout)
	p.Total = utils.FormatNaira(amount.Mul(decimal.NewFromInt(int64(p.Debits))))
	return p, true
}
