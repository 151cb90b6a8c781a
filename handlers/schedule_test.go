package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autosave/config"
	draftRepo "autosave/database/repository/draft"
	"autosave/middleware"
	"autosave/models"
	"autosave/services/coreapi"
	"autosave/services/schedule"
	"autosave/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handlerNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

type stubSavingsAPI struct {
	createErr error
	created   int
}

func (s *stubSavingsAPI) ListPackages(context.Context, models.AuthSession) ([]models.SelectablePackage, error) {
	return []models.SelectablePackage{{
		ID:           "daily-1",
		Type:         models.ContributionDailySavings,
		Title:        "Daily Ajo",
		AmountPerDay: decimal.NewFromInt(1000),
		TotalCount:   25,
	}}, nil
}

func (s *stubSavingsAPI) ListCards(context.Context, models.AuthSession) ([]models.PaymentCard, error) {
	return []models.PaymentCard{{ID: "card-1", Bank: "GTBank", Last4: "4242", IsDefault: true}}, nil
}

func (s *stubSavingsAPI) CreateSchedule(context.Context, models.AuthSession, models.CreateScheduleRequest) (*models.CreateScheduleResponse, error) {
	s.created++
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.CreateScheduleResponse{ID: "sched-77"}, nil
}

type testServer struct {
	router *gin.Engine
	api    *stubSavingsAPI
	svc    *schedule.DefaultDraftSessionService
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "handler-test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	token, err := utils.GenerateToken("user-1", time.Hour)
	require.NoError(t, err)

	api := &stubSavingsAPI{}
	svc := &schedule.DefaultDraftSessionService{
		Repo:      draftRepo.NewMemoryDraftRepo(time.Hour, time.Minute),
		Catalog:   api,
		Submitter: &schedule.Submitter{Creator: api},
		Now:       func() time.Time { return handlerNow },
	}
	h := NewScheduleHandler(svc)
	h.Now = func() time.Time { return handlerNow }
	hb := NewHandlerBundle(h)

	r := gin.New()
	g := r.Group("/api/schedules/drafts", middleware.JWTAuthMiddleware(), middleware.DeviceDetailsMiddleware())
	g.POST("", hb.StartDraft)
	g.GET("/:draftID", hb.GetDraft)
	g.POST("/:draftID/actions", hb.ApplyAction)
	g.POST("/:draftID/submit", hb.SubmitDraft)
	g.DELETE("/:draftID", hb.CancelDraft)

	return &testServer{router: r, api: api, svc: svc, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (s *testServer) start(t *testing.T) string {
	t.Helper()
	w, body := s.do(t, http.MethodPost, "/api/schedules/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return body["id"].(string)
}

func (s *testServer) toReview(t *testing.T, id string) {
	t.Helper()
	for _, a := range []schedule.Action{
		{Type: schedule.ActionSelectPackage, Value: "daily-1"},
		{Type: schedule.ActionSelectCard, Value: "card-1"},
		{Type: schedule.ActionAdvance},
		{Type: schedule.ActionSetAmount, Value: "6000"},
		{Type: schedule.ActionSetFrequency, Value: "daily"},
		{Type: schedule.ActionAdvance},
		{Type: schedule.ActionSetStartDate, Value: "2026-10-15"},
	} {
		w, _ := s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/actions", a)
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestStartDraftReturnsStepOne(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/api/schedules/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, body["step"])
	assert.Equal(t, "editing", body["status"])
	assert.Equal(t, false, body["canGoBack"])
	assert.Equal(t, false, body["submitEnabled"])
	assert.Equal(t, "2026-10-15", body["minStartDate"])
	assert.Len(t, body["packages"], 1)
}

func TestApplyActionShowsInlineErrors(t *testing.T) {
	s := newTestServer(t)
	id := s.start(t)

	_, _ = s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/actions", schedule.Action{Type: schedule.ActionSelectPackage, Value: "daily-1"})
	_, _ = s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/actions", schedule.Action{Type: schedule.ActionSelectCard, Value: "card-1"})
	_, _ = s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/actions", schedule.Action{Type: schedule.ActionAdvance})

	w, body := s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/actions", schedule.Action{Type: schedule.ActionSetAmount, Value: "7000"})
	require.Equal(t, http.StatusOK, w.Code)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, "Max: ₦6,000 (6 days remaining in cycle)", errs["amount"])
}

func TestApplyActionBadInput(t *testing.T) {
	s := newTestServer(t)
	id := s.start(t)

	w, _ := s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/actions", map[string]string{"type": "teleport"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/schedules/drafts/"+id+"/actions", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitFailureKeepsDraftForRetry(t *testing.T) {
	s := newTestServer(t)
	s.api.createErr = &coreapi.APIError{Status: http.StatusServiceUnavailable, Message: "Network error"}
	id := s.start(t)
	s.toReview(t, id)

	w, body := s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/submit", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Network error", body["message"])
	draft := body["draft"].(map[string]any)
	assert.Equal(t, "failed", draft["status"])
	assert.Equal(t, "Network error", draft["submitError"])
	assert.Equal(t, true, draft["submitEnabled"])
	assert.EqualValues(t, 3, draft["step"])

	s.api.createErr = nil
	w, body = s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "sched-77", body["scheduleId"])
	assert.Equal(t, schedule.SuccessMessage, body["message"])
	assert.Equal(t, 2, s.api.created)

	w, _ = s.do(t, http.MethodGet, "/api/schedules/drafts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitValidationFailure(t *testing.T) {
	s := newTestServer(t)
	id := s.start(t)
	s.toReview(t, id)

	s.svc.Now = func() time.Time { return handlerNow.Add(24 * time.Hour) }

	w, body := s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.EqualValues(t, 3, body["step"])
	errs := body["errors"].(map[string]any)
	assert.Equal(t, "Start date must be at least tomorrow", errs["startDate"])
	assert.Zero(t, s.api.created)
}

func TestSubmitBeforeReview(t *testing.T) {
	s := newTestServer(t)
	id := s.start(t)

	w, _ := s.do(t, http.MethodPost, "/api/schedules/drafts/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelDraft(t *testing.T) {
	s := newTestServer(t)
	id := s.start(t)

	w, _ := s.do(t, http.MethodDelete, "/api/schedules/drafts/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, body := s.do(t, http.MethodGet, "/api/schedules/drafts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Schedule draft not found or expired", body["message"])
}

func TestDraftRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/schedules/drafts", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
