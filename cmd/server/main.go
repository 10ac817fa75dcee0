package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"agriassist/internal/agent"
	"agriassist/internal/cases"
	"agriassist/internal/config"
	"agriassist/internal/language"
	"agriassist/internal/media"
	"agriassist/internal/platform/twilio"
	"agriassist/internal/report"
	"agriassist/internal/speech"
)

func main() {
	// 1. Configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment.")
	}
	cfg := config.Load()

	// 2. Storage
	var store cases.Store
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL is not set. Using in-memory store; cases will not survive restarts.")
		store = cases.NewMemoryStore(cfg.RateLimitCooldown)
	} else {
		db := connectDB(cfg.DatabaseURL)
		runMigrations(cfg.DatabaseURL)
		store = cases.NewPostgresStore(db, cfg.RateLimitCooldown)
	}

	// 3. Clients
	aiClient := agent.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
	ttsClient := agent.NewGoogleTTSClient()
	twilioClient := twilio.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsApp)

	synth, err := speech.NewSynthesizer(ttsClient, cfg.AudioDir, cfg.AudioBaseURL)
	if err != nil {
		log.Fatalf("Could not prepare audio directory: %v", err)
	}

	// 4. Services
	detector := language.NewDetector(
		language.Code(cfg.DefaultLanguage),
		cfg.RegionPrefix,
		cfg.RegionAreaCodes,
		language.Code(cfg.RegionLanguage),
	)
	fetcher := media.NewFetcher(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.MinImageBytes, cfg.MediaTimeout)

	if cfg.ExpertWhatsApp == "" {
		log.Println("Warning: EXPERT_WHATSAPP is not set. Escalation alerts will not be sent.")
	}
	reportSvc := report.NewService(twilioClient, cfg.ExpertWhatsApp)
	caseSvc := cases.NewService(store, detector, fetcher, aiClient, synth, reportSvc)
	caseHandler := cases.NewHandler(caseSvc, reportSvc)

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/whatsapp", caseHandler.HandleWebhook)
	r.Post("/status_callback", caseHandler.HandleStatusCallback)
	r.Route("/api", func(r chi.Router) {
		cases.RegisterRoutes(r, caseHandler)
	})

	fileServer := http.FileServer(http.Dir(cfg.AudioDir))
	r.Handle("/audio/*", http.StripPrefix("/audio/", fileServer))

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

func connectDB(dsn string) *sql.DB {
	var db *sql.DB
	var err error

	// Simple retry loop so the service survives the database coming up
	// after it in a compose environment.
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		fmt.Printf("Waiting for DB... (%d/10)\n", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("Could not connect to DB: %v", err)
	}
	log.Println("Connected to Database.")
	return db
}

func runMigrations(dsn string) {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Printf("Migration init failed: %v", err)
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Printf("Migration up failed: %v", err)
		return
	}
	log.Println("Migrations applied successfully!")
}
