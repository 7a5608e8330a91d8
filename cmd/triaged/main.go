package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cognicore/triage/internal/httpapi"
	"github.com/cognicore/triage/pkg/triage"
	"github.com/cognicore/triage/pkg/triage/config"
	"github.com/cognicore/triage/pkg/triage/transcript/sqlite"
)

func main() {
	gin.SetMode(getEnv("GIN_MODE", "release"))
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("TRIAGE_CONFIG"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// The model must be ready before the listener opens; a missing or
	// unreadable source file halts the process here.
	engine, err := triage.BuildModel(cfg.DataPath, triage.Options{TopK: cfg.TopK})
	if err != nil {
		log.Fatalf("build model: %v", err)
	}

	ctx := context.Background()
	store, err := sqlite.Open(ctx, cfg.TranscriptDB)
	if err != nil {
		log.Fatalf("open transcript store: %v", err)
	}
	defer store.Close()

	router := httpapi.New(engine, store, nil).Router(cfg.AllowedOrigins)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	log.Printf("server listening on :%s", cfg.Port)
	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
