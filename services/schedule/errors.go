package schedule

import (
	"errors"
	"fmt"

	"autosave/models"
)

var (
	ErrDraftNotFound      = errors.New("schedule draft not found or expired")
	ErrSubmissionInFlight = errors.New("a submission for this draft is already in progress")
	ErrNotOnReviewStep    = errors.New("schedule can only be submitted from the review step")
	ErrUnknownAction      = errors.New("unknown wizard action")
)

// DefaultSubmitFailure is shown when the savings API gives no usable message.
const DefaultSubmitFailure = "Unable to create schedule. Please try again."

// SuccessMessage is shown once a schedule has been created.
const SuccessMessage = "Schedule created successfully"

// ValidationError is returned when a submit attempt finds invalid fields.
type ValidationError struct {
	Step   models.WizardStep
	Fields models.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on step %d: %d field(s)", e.Step, len(e.Fields))
}

// SubmitError wraps a failed call to the savings API. Message is safe to show.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("create schedule failed: %s", e.Message)
}

func (e *SubmitError) Unwrap() error { return e.Err }
