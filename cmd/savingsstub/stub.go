package main

import (
	"net/http"
	"strings"
	"sync"

	"autosave/middleware"
	"autosave/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Stub is an in-memory stand-in for the savings API, for running the BFF
// and the CLI locally.
type Stub struct {
	packages []models.SelectablePackage
	cards    []models.PaymentCard

	mu        sync.Mutex
	failFirst int
	created   []models.CreateScheduleRequest
}

func NewStub(packages []models.SelectablePackage, cards []models.PaymentCard, failFirst int) *Stub {
	return &Stub{packages: packages, cards: cards, failFirst: failFirst}
}

// SeedPackages returns one package of each kind, the daily one part way
// through its cycle.
func SeedPackages() []models.SelectablePackage {
	return []models.SelectablePackage{
		{
			ID:              "pkg-daily-ajo",
			Type:            models.ContributionDailySavings,
			Title:           "Daily Ajo",
			CurrentBalance:  decimal.NewFromInt(25000),
			ProgressPercent: 80.6,
			AmountPerDay:    decimal.NewFromInt(1000),
			TotalCount:      25,
		},
		{
			ID:              "pkg-new-phone",
			Type:            models.ContributionSavingsBuying,
			Title:           "New Phone",
			CurrentBalance:  decimal.NewFromInt(120000),
			ProgressPercent: 40,
		},
	}
}

func SeedCards() []models.PaymentCard {
	return []models.PaymentCard{
		{ID: "card-gtb", Bank: "GTBank", Last4: "4242"},
		{ID: "card-access", Bank: "Access", Last4: "1111", IsDefault: true},
	}
}

// Created returns the schedules accepted so far.
func (s *Stub) Created() []models.CreateScheduleRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CreateScheduleRequest(nil), s.created...)
}

func (s *Stub) Router(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), requireBearer())
	r.GET("/packages", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": s.packages})
	})
	r.GET("/cards", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": s.cards})
	})
	r.POST("/schedules", s.createSchedule)
	return r
}

func (s *Stub) createSchedule(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid schedule payload"})
		return
	}
	if req.PackageID == "" || req.CardID == "" || req.StartDate == "" || !req.Frequency.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Schedule is incomplete"})
		return
	}

	s.mu.Lock()
	if s.failFirst > 0 {
		s.failFirst--
		s.mu.Unlock()
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Network error"})
		return
	}
	s.created = append(s.created, req)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"data": models.CreateScheduleResponse{ID: uuid.New().String()}})
}

func requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing bearer token"})
			return
		}
		c.Next()
	}
}
