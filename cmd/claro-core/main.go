package main

// @title           Claro Core API
// @version         1.0
// @description     Bilingual patient education content registry. Claro Core validates, indexes, and serves leveled health education content with reading-level and locale fallback.

// @contact.name   Claro OSS
// @contact.url    https://github.com/custodia-labs/claro-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/custodia-labs/claro-core/docs"
	"github.com/custodia-labs/claro-core/internal/adapters/driven/auth"
	"github.com/custodia-labs/claro-core/internal/adapters/driven/jsonsource"
	"github.com/custodia-labs/claro-core/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/claro-core/internal/adapters/driven/redis"
	"github.com/custodia-labs/claro-core/internal/adapters/driving/http"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven"
	"github.com/custodia-labs/claro-core/internal/core/ports/driving"
	"github.com/custodia-labs/claro-core/internal/core/services"
	"github.com/custodia-labs/claro-core/internal/runtime"
	"github.com/custodia-labs/claro-core/internal/worker"
	"github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	// Get run mode from environment (RUN_MODE) or command line arg
	mode := getEnv("RUN_MODE", "all")
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Printf("claro-core %s starting in %s mode", version, mode)

	// Configuration from environment
	jwtSecret := getEnv("JWT_SECRET", "development-secret-change-in-production")
	port := getEnvInt("PORT", 8080)
	databaseURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")
	contentDir := getEnv("CONTENT_DIR", "./content")
	sourceKind := getEnv("CONTENT_SOURCE", "json")
	strictValidation := getEnvBool("STRICT_VALIDATION", false)
	cacheTTL := time.Duration(getEnvInt("CACHE_TTL_SEC", 300)) * time.Second
	rebuildInterval := time.Duration(getEnvInt("REBUILD_INTERVAL_SEC", 300)) * time.Second

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Initialize PostgreSQL (optional) =====
	var db *postgres.DB
	if databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		dbConfig := postgres.Config{
			URL:             databaseURL,
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(getEnvInt("DB_CONN_MAX_IDLE_SEC", 60)) * time.Second,
		}
		var err error
		db, err = postgres.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		log.Println("PostgreSQL connected and schema initialized")
	}

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Record archive and report store (PostgreSQL if available) =====
	var recordStore driven.RecordStore
	var reportStore driven.ReportStore
	var pgRecords *postgres.RecordStore
	if db != nil {
		pgRecords = postgres.NewRecordStore(db)
		recordStore = pgRecords
		reportStore = postgres.NewReportStore(db)
	}

	// ===== Content source =====
	var contentSource driven.ContentSource
	switch sourceKind {
	case "json":
		contentSource = jsonsource.NewSource(contentDir)
		log.Printf("Using JSON content source: %s", contentDir)
	case "postgres":
		if pgRecords == nil {
			log.Fatal("CONTENT_SOURCE=postgres requires DATABASE_URL")
		}
		contentSource = pgRecords
		log.Println("Using PostgreSQL content source")
	default:
		log.Fatalf("Unknown content source: %s (use: json or postgres)", sourceKind)
	}

	// ===== Resolved-content cache and distributed lock (Redis if available) =====
	var contentCache driven.ContentCache
	var distributedLock driven.DistributedLock
	var redisPinger http.Pinger
	if redisClient != nil {
		cache := redisadapter.NewContentCache(redisClient)
		contentCache = cache
		redisPinger = cache
		distributedLock = redisadapter.NewLock(redisClient)
		log.Println("Using Redis resolved-content cache and rebuild lock")
	} else if db != nil {
		distributedLock = postgres.NewAdvisoryLock(db)
		log.Println("Using PostgreSQL advisory rebuild lock")
	}

	// ===== Auth adapter and maintainer identity =====
	authAdapter := auth.NewAdapter(jwtSecret)
	maintainerUser := getEnv("MAINTAINER_USER", "maintainer")
	passwordHash := getEnv("MAINTAINER_PASSWORD_HASH", "")
	if passwordHash == "" {
		var err error
		passwordHash, err = authAdapter.HashPassword(getEnv("MAINTAINER_PASSWORD", "claro-dev"))
		if err != nil {
			log.Fatalf("Failed to hash maintainer password: %v", err)
		}
	}

	// ===== Snapshot and services (core business logic) =====
	snapshot := runtime.NewSnapshot()
	authService := services.NewAuthService(authAdapter, maintainerUser, passwordHash)
	contentService := services.NewContentService(snapshot, contentCache, cacheTTL)
	registryService := services.NewRegistryService(
		contentSource,
		snapshot,
		recordStore,
		reportStore,
		contentCache,
		strictValidation,
		slog.Default(),
	)

	log.Printf("Registry config: source=%s, strict=%t, cache=%t, lock=%t",
		contentSource.Name(), strictValidation, contentCache != nil, distributedLock != nil)

	// Initial build so the API serves immediately. A strict rejection is
	// not fatal here since the worker retries on its interval.
	if _, err := registryService.Rebuild(ctx); err != nil {
		log.Printf("Warning: initial registry build failed: %v", err)
	}

	var dbPinger http.Pinger
	if db != nil {
		dbPinger = db
	}

	switch mode {
	case "api":
		// API-only mode: HTTP server, no background rebuilds
		runAPI(port, authService, contentService, registryService, dbPinger, redisPinger)

	case "worker":
		// Worker-only mode: periodic rebuilds, no HTTP server
		runWorkerMode(ctx, registryService, distributedLock, rebuildInterval)

	case "all":
		// Combined mode: Run both API and rebuild worker
		go runWorkerMode(ctx, registryService, distributedLock, rebuildInterval)
		runAPI(port, authService, contentService, registryService, dbPinger, redisPinger)

	default:
		log.Fatalf("Unknown mode: %s (use: api, worker, or all)", mode)
	}
}

func runAPI(
	port int,
	authService driving.AuthService,
	contentService driving.ContentService,
	registryService driving.RegistryService,
	db http.Pinger,
	redisClient http.Pinger,
) {
	cfg := http.Config{
		Host:    "0.0.0.0",
		Port:    port,
		Version: version,
	}

	server := http.NewServer(
		cfg,
		authService,
		contentService,
		registryService,
		db,
		redisClient,
	)

	log.Printf("API server starting on :%d", port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runWorkerMode starts the periodic rebuild worker.
func runWorkerMode(
	ctx context.Context,
	registryService driving.RegistryService,
	lock driven.DistributedLock,
	interval time.Duration,
) {
	log.Println("Starting rebuild worker...")

	w := worker.NewWorker(worker.Config{
		Registry: registryService,
		Lock:     lock,
		Logger:   slog.Default(),
		Interval: interval,
		LockTTL:  time.Duration(getEnvInt("REBUILD_LOCK_TTL_SEC", 120)) * time.Second,
	})

	if err := w.Start(ctx); err != nil {
		log.Fatalf("Failed to start rebuild worker: %v", err)
	}

	log.Printf("Rebuild worker started (interval=%s)", interval)

	// Wait for context cancellation
	<-ctx.Done()

	// Graceful shutdown
	log.Println("Stopping rebuild worker...")
	w.Stop()
	log.Println("Rebuild worker stopped")
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
