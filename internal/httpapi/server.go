package httpapi

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cognicore/triage/pkg/triage"
	"github.com/cognicore/triage/pkg/triage/schedule"
	"github.com/cognicore/triage/pkg/triage/transcript"
)

// Server wires the diagnosis engine and transcript store into a gin
// router. The engine is read-only; the store synchronizes itself. The
// rng has its own lock since rand.Rand is not safe for concurrent use
// and handlers run in parallel.
type Server struct {
	engine *triage.Engine
	store  transcript.Store

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a server. A nil rng falls back to a time-seeded source.
func New(engine *triage.Engine, store transcript.Store, rng *rand.Rand) *Server {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Server{engine: engine, store: store, rng: rng}
}

// Router builds the HTTP routes.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: allowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", s.handleReady)

	api := router.Group("/api")
	api.GET("/symptoms", s.handleListSymptoms)
	api.GET("/symptoms/suggest", s.handleSuggestSymptoms)
	api.POST("/diagnose", s.handleDiagnose)
	api.GET("/appointments", s.handleAppointments)
	api.GET("/transcripts/:id", s.handleGetTranscript)

	router.POST("/webhook/tools", s.handleToolWebhook)

	return router
}

func (s *Server) handleReady(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "transcripts": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":      "degraded",
			"transcripts": fmt.Sprintf("unhealthy: %v", err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "transcripts": "ok"})
}

// slots serializes access to the shared rng for appointment generation.
func (s *Server) slots() map[string][]string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return schedule.Slots(time.Now(), s.rng)
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
