package handlers

import (
	"errors"
	"net/http"
	"time"

	"autosave/middleware"
	"autosave/services/schedule"
	"autosave/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler serves the create-schedule wizard over HTTP.
type ScheduleHandler struct {
	Service schedule.DraftSessionService
	Now     func() time.Time
}

func NewScheduleHandler(service schedule.DraftSessionService) *ScheduleHandler {
	return &ScheduleHandler{Service: service, Now: time.Now}
}

func (h *ScheduleHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// StartDraft opens a new wizard on step 1 with the caller's packages and cards.
func (h *ScheduleHandler) StartDraft(c *gin.Context) {
	auth, ok := middleware.AuthSessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	session, err := h.Service.InitiateDraft(c.Request.Context(), auth, c.GetString(middleware.ContextFCMToken))
	if err != nil {
		getLogger(c).Error("failed to start schedule draft", zap.String("userId", auth.UserID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Unable to load savings packages and cards", err.Error())
		return
	}
	c.JSON(http.StatusCreated, schedule.NewDraftView(session, h.now()))
}

// GetDraft returns the current view of a draft.
func (h *ScheduleHandler) GetDraft(c *gin.Context) {
	auth, ok := middleware.AuthSessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	session, err := h.Service.GetDraft(c.Request.Context(), auth, c.Param("draftID"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule.NewDraftView(session, h.now()))
}

// ApplyAction forwards one field change or navigation tap to the wizard.
func (h *ScheduleHandler) ApplyAction(c *gin.Context) {
	auth, ok := middleware.AuthSessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var action schedule.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	session, err := h.Service.ApplyAction(c.Request.Context(), auth, c.Param("draftID"), action)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule.NewDraftView(session, h.now()))
}

// SubmitDraft creates the schedule on the savings API.
func (h *ScheduleHandler) SubmitDraft(c *gin.Context) {
	auth, ok := middleware.AuthSessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	draftID := c.Param("draftID")

	result, err := h.Service.SubmitDraft(c.Request.Context(), auth, draftID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	getLogger(c).Info("schedule created", zap.String("draftId", draftID), zap.String("scheduleId", result.ScheduleID))
	c.JSON(http.StatusCreated, result)
}

// CancelDraft discards the draft when the user leaves the wizard.
func (h *ScheduleHandler) CancelDraft(c *gin.Context) {
	auth, ok := middleware.AuthSessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	if err := h.Service.CancelDraft(c.Request.Context(), auth, c.Param("draftID")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps service errors onto HTTP responses. Failures that leave the
// draft in a new state carry the refreshed view so the client can re-render.
func (h *ScheduleHandler) writeError(c *gin.Context, err error) {
	var vErr *schedule.ValidationError
	var subErr *schedule.SubmitError

	switch {
	case errors.Is(err, schedule.ErrDraftNotFound):
		utils.JSONError(c, http.StatusNotFound, "Schedule draft not found or expired", "")
	case errors.Is(err, schedule.ErrSubmissionInFlight):
		utils.JSONError(c, http.StatusConflict, "A submission is already in progress", "")
	case errors.Is(err, schedule.ErrNotOnReviewStep):
		utils.JSONError(c, http.StatusConflict, "Complete every step before submitting", "")
	case errors.Is(err, schedule.ErrUnknownAction):
		utils.JSONError(c, http.StatusBadRequest, "Unknown wizard action", "")
	case errors.As(err, &vErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Please fix the highlighted fields",
			"step":    vErr.Step,
			"errors":  vErr.Fields,
			"draft":   h.currentView(c),
		})
	case errors.As(err, &subErr):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
			"message": subErr.Message,
			"draft":   h.currentView(c),
		})
	default:
		getLogger(c).Error("schedule draft request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// currentView reloads the draft for an error response. It is nil if the draft
// can no longer be read.
func (h *ScheduleHandler) currentView(c *gin.Context) *schedule.DraftView {
	auth, _ := middleware.AuthSessionFrom(c)
	session, err := h.Service.GetDraft(c.Request.Context(), auth, c.Param("draftID"))
	if err != nil {
		return nil
	}
	v := schedule.NewDraftView(session, h.now())
	return &v
}
