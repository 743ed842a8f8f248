package main

import (
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pagecanvas/canvas-api/internal/api"
	"github.com/pagecanvas/canvas-api/internal/config"
	"github.com/pagecanvas/canvas-api/internal/database"
)

var releaseVersion = "dev"

func main() {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "canvas-api@" + releaseVersion,
			TracesSampleRate: 0.2,
			BeforeSend:       filterSensitiveData,
		})
		if err != nil {
			log.Printf("⚠️ Sentry initialization failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			log.Println("✅ Sentry initialized")
		}
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	log.Println("✅ Database ready")

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(db, cfg, releaseVersion)

	log.Printf("🚀 Canvas API listening on port %s (env: %s, auth: %s)", cfg.Port, cfg.Environment, cfg.AuthMode)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

// filterSensitiveData strips auth headers before events leave the process
func filterSensitiveData(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if event.Request != nil {
		for _, header := range []string{"Authorization", "Cookie", "X-User-Email"} {
			delete(event.Request.Headers, header)
			delete(event.Request.Headers, http.CanonicalHeaderKey(header))
		}
	}
	return event
}
