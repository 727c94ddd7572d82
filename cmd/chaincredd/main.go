// Command chaincredd is the hosted ChainCred platform service.
// It serves the CI webhook endpoint, the REST API, and a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/JerrySanjuJoanes/chaincred/internal/api"
	"github.com/JerrySanjuJoanes/chaincred/internal/candidate"
	"github.com/JerrySanjuJoanes/chaincred/internal/ingestion"
	"github.com/JerrySanjuJoanes/chaincred/internal/platform"
	"github.com/JerrySanjuJoanes/chaincred/internal/webhook"
	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
)

type config struct {
	Port          string
	DatabaseURL   string
	APIKey        string
	WebhookSecret string
	GCSBucket     string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	StoragePath   string
}

func loadConfig() config {
	return config{
		Port:          envOrDefault("PORT", "8080"),
		DatabaseURL:   envOrDefault("DATABASE_URL", "postgres://localhost:5432/chaincred?sslmode=disable"),
		APIKey:        os.Getenv("API_KEY"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		GCSBucket:     os.Getenv("GCS_BUCKET"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      os.Getenv("S3_REGION"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		StoragePath:   envOrDefault("LOCAL_STORAGE_PATH", "/tmp/chaincred-data"),
	}
}

func main() {
	cfg := loadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	storage, err := selectStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("initialize storage: %v", err)
	}

	candidateSvc := candidate.NewService(db)
	pipeline := analysis.NewPipeline(nil, nil, nil)
	ingestionSvc := ingestion.NewService(db, candidateSvc, storage, pipeline)

	webhookHandler := webhook.NewHandler([]byte(cfg.WebhookSecret), candidateSvc, ingestionSvc)
	apiHandler := api.NewHandler(db, candidateSvc, ingestionSvc, nil)

	// API routes sit behind the key check; the webhook authenticates with
	// its own HMAC signature and healthz stays open for load balancers.
	apiMux := http.NewServeMux()
	apiHandler.RegisterRoutes(apiMux)

	mux := http.NewServeMux()
	mux.Handle("POST /v1/webhooks/ci", webhookHandler)
	mux.Handle("/api/", api.APIKeyAuth(cfg.APIKey)(apiMux))
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.CORS(mux),
	}

	go func() {
		log.Printf("starting chaincredd on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// selectStorage picks GCS, S3, or local blob storage based on environment.
func selectStorage(ctx context.Context, cfg config) (ingestion.StorageClient, error) {
	switch {
	case cfg.GCSBucket != "":
		return ingestion.NewGCSStorage(ctx, cfg.GCSBucket)
	case cfg.S3Bucket != "":
		return ingestion.NewS3Storage(ctx, ingestion.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return ingestion.NewLocalStorage(cfg.StoragePath), nil
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
