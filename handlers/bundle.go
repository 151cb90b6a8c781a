package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers the router mounts.
type HandlerBundle struct {
	Schedule *ScheduleHandler

	// Schedule draft endpoints
	StartDraft  gin.HandlerFunc
	GetDraft    gin.HandlerFunc
	ApplyAction gin.HandlerFunc
	SubmitDraft gin.HandlerFunc
	CancelDraft gin.HandlerFunc
}

// NewHandlerBundle wires the schedule handler methods into the bundle.
func NewHandlerBundle(schedule *ScheduleHandler) *HandlerBundle {
	return &HandlerBundle{
		Schedule:    schedule,
		StartDraft:  schedule.StartDraft,
		GetDraft:    schedule.GetDraft,
		ApplyAction: schedule.ApplyAction,
		SubmitDraft: schedule.SubmitDraft,
		CancelDraft: schedule.CancelDraft,
	}
}
