package models

import "time"

// WizardStep is the 1-based position in the create-schedule wizard.
type WizardStep int

const (
	StepSelection WizardStep = 1 // package and card
	StepAmount    WizardStep = 2 // amount and frequency
	StepSchedule  WizardStep = 3 // dates and review
)

// WizardStatus tracks submission progress.
type WizardStatus string

const (
	StatusEditing    WizardStatus = "editing"
	StatusSubmitting WizardStatus = "submitting"
	StatusFailed     WizardStatus = "failed"
	StatusSucceeded  WizardStatus = "succeeded"
)

// WizardState is everything one wizard instance owns: the draft being built,
// the inline errors, and the read-only packages and cards it was opened with.
type WizardState struct {
	Step        WizardStep          `json:"step"`
	Status      WizardStatus        `json:"status"`
	Draft       ScheduleDraft       `json:"draft"`
	Errors      FieldErrors         `json:"errors"`
	SubmitError string              `json:"submitError,omitempty"`
	Packages    []SelectablePackage `json:"packages"`
	Cards       []PaymentCard       `json:"cards"`
}

// Clone returns a deep copy of the mutable parts of s. Packages and cards are
// read-only and stay shared.
func (s WizardState) Clone() WizardState {
	out := s
	out.Draft = s.Draft.Clone()
	out.Errors = s.Errors.Clone()
	return out
}

// Package looks up an offered package by id.
func (s WizardState) Package(id string) (SelectablePackage, bool) {
	for _, p := range s.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return SelectablePackage{}, false
}

// Card looks up an offered card by id.
func (s WizardState) Card(id string) (PaymentCard, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return PaymentCard{}, false
}

// DraftSession is a wizard hosted for one user between start and submit/cancel.
type DraftSession struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	FCMToken  string      `json:"fcmToken,omitempty"`
	Wizard    WizardState `json:"wizard"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
