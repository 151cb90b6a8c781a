package routes

import (
	"net/http"
	"time"

	"autosave/handlers"
	"autosave/middleware"
	"autosave/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes sets up the endpoints for the create-schedule wizard.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	drafts := r.Group("/api/schedules/drafts")
	{
		drafts.Use(middleware.JWTAuthMiddleware())
		drafts.Use(middleware.DeviceDetailsMiddleware())
		drafts.POST("", hb.StartDraft)
		drafts.GET("/:draftID", hb.GetDraft)
		drafts.POST("/:draftID/actions", hb.ApplyAction)
		drafts.POST("/:draftID/submit", hb.SubmitDraft)
		drafts.DELETE("/:draftID", hb.CancelDraft)
	}
}

// RegisterHealthRoute registers a health-check endpoint. It reports 503 when a
// configured backend failed its last check.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		healthy := (status.Redis == nil || *status.Redis) && (status.Mongo == nil || *status.Mongo)
		code, label := http.StatusOK, "ok"
		if !healthy {
			code, label = http.StatusServiceUnavailable, "degraded"
		}
		c.JSON(code, gin.H{"status": label, "checks": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Device-ID", "X-FCM-Token", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterScheduleRoutes(r, hb)
}
