package models

import (
	"encoding/json"
	"time"
)

// ContributionType is the kind of package a schedule pays into.
type ContributionType string

const (
	ContributionDailySavings  ContributionType = "daily-savings"
	ContributionSavingsBuying ContributionType = "savings-buying"
)

func (t ContributionType) Valid() bool {
	return t == ContributionDailySavings || t == ContributionSavingsBuying
}

// Frequency is how often a scheduled contribution is debited.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Field names used as FieldErrors keys and in wizard actions.
const (
	FieldPackageID = "packageId"
	FieldCardID    = "cardId"
	FieldAmount    = "amount"
	FieldFrequency = "frequency"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
)

// ScheduleDraft holds the values collected by the create-schedule wizard.
// Amount is kept exactly as typed so a malformed entry can be reported inline.
type ScheduleDraft struct {
	PackageID        string           `json:"packageId"`
	ContributionType ContributionType `json:"contributionType,omitempty"`
	CardID           string           `json:"cardId"`
	Amount           string           `json:"amount"`
	Frequency        Frequency        `json:"frequency,omitempty"`
	StartDate        *time.Time       `json:"startDate,omitempty"`
	EndDate          *time.Time       `json:"endDate,omitempty"`
}

// Clone returns a copy that shares no pointers with d.
func (d ScheduleDraft) Clone() ScheduleDraft {
	out := d
	if d.StartDate != nil {
		t := *d.StartDate
		out.StartDate = &t
	}
	if d.EndDate != nil {
		t := *d.EndDate
		out.EndDate = &t
	}
	return out
}

// FieldErrors maps a field name to a human readable message.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool { return len(e) == 0 }

func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Merge copies every entry of other into e, overwriting duplicates.
func (e FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		e[k] = v
	}
}

// CreateScheduleRequest is the payload sent to the savings API.
type CreateScheduleRequest struct {
	PackageID        string           `json:"packageId"`
	ContributionType ContributionType `json:"contributionType"`
	CardID           string           `json:"cardId"`
	Amount           json.Number      `json:"amount"`
	Frequency        Frequency        `json:"frequency"`
	StartDate        string           `json:"startDate"`
	EndDate          string           `json:"endDate,omitempty"`
}

// CreateScheduleResponse is what the savings API returns for a created schedule.
type CreateScheduleResponse struct {
	ID string `json:"id"`
}
