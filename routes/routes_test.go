package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"autosave/handlers"
	"autosave/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, handlers.NewHandlerBundle(handlers.NewScheduleHandler(nil)))
	return r
}

func TestHealthReportsBackends(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	r := newRouter()

	utils.CheckHealth(context.Background(), client, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":true`)

	mr.Close()
	utils.CheckHealth(context.Background(), client, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestScheduleRoutesAreProtected(t *testing.T) {
	r := newRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/schedules/drafts"},
		{http.MethodGet, "/api/schedules/drafts/abc"},
		{http.MethodPost, "/api/schedules/drafts/abc/actions"},
		{http.MethodPost, "/api/schedules/drafts/abc/submit"},
		{http.MethodDelete, "/api/schedules/drafts/abc"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}
