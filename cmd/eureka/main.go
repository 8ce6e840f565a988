// Package main is the entry point for the Eureka server.
//
//	@title						Eureka API
//	@version					1.0
//	@description				Document intelligence API. Eureka extracts, tags, paginates and annotates uploaded documents and answers questions about the corpus.
//	@contact.name				Eureka
//	@contact.url				https://github.com/bhaktikarche/eureka/issues
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: "Bearer {token}"
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	_ "github.com/bhaktikarche/eureka/docs"
	"github.com/bhaktikarche/eureka/internal/adapters/driven/auth"
	"github.com/bhaktikarche/eureka/internal/adapters/driven/extractor"
	"github.com/bhaktikarche/eureka/internal/adapters/driven/filewatcher"
	"github.com/bhaktikarche/eureka/internal/adapters/driven/postgres"
	"github.com/bhaktikarche/eureka/internal/adapters/driven/redis"
	"github.com/bhaktikarche/eureka/internal/adapters/driving/http"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
	"github.com/bhaktikarche/eureka/internal/core/services"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	ctx := context.Background()

	// Required configuration
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	// PostgreSQL
	dbCfg := postgres.Config{
		URL:             databaseURL,
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := postgres.Connect(connectCtx, dbCfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("Database connected and schema initialized")

	// Redis is optional. With it, sessions and the page cache live in
	// Redis; without it, sessions fall back to Postgres and pages are
	// re-extracted on every view.
	var redisClient *goredis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisOpts, err := goredis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		redisClient = goredis.NewClient(redisOpts)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Redis connected")
	} else {
		log.Println("REDIS_URL not set, using Postgres sessions and no page cache")
	}

	// Driven adapters
	documentStore := postgres.NewDocumentStore(db)
	annotationStore := postgres.NewAnnotationStore(db)
	userStore := postgres.NewUserStore(db)
	authAdapter := auth.NewAdapter(jwtSecret)
	extractors := extractor.NewRegistry()

	var sessionStore driven.SessionStore
	var pageCache driven.PageCache
	var redisPing http.Pinger
	if redisClient != nil {
		sessionStore = redis.NewSessionStore(redisClient)
		pageCache = redis.NewPageCache(redisClient)
		redisPing = redisPinger{redisClient}
	} else {
		sessionStore = postgres.NewSessionStore(db)
	}

	uploadDir := getEnv("UPLOAD_DIR", "./uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Core services
	authService := services.NewAuthService(userStore, sessionStore, authAdapter)
	userService := services.NewUserService(userStore, sessionStore, authAdapter)
	ingestService := services.NewIngestService(documentStore, extractors, uploadDir)
	pageService := services.NewPageService(documentStore, extractors, pageCache)
	documentService := services.NewDocumentService(documentStore, annotationStore, pageCache)
	annotationService := services.NewAnnotationService(documentStore, annotationStore, pageService)
	searchService := services.NewSearchService(documentStore)
	chatService := services.NewChatService(documentStore, documentService, pageService)
	analyticsService := services.NewAnalyticsService(documentStore)

	// Optional drop-directory watcher
	if watchDir := os.Getenv("WATCH_DIR"); watchDir != "" {
		watcher, err := filewatcher.New(watchDir, ingestService, slog.Default())
		if err != nil {
			log.Fatalf("Failed to create file watcher: %v", err)
		}
		go func() {
			if err := watcher.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("File watcher stopped: %v", err)
			}
		}()
		log.Printf("Watching %s for dropped files", watchDir)
	}

	// HTTP server
	serverCfg := http.Config{
		Host:    getEnv("HOST", "0.0.0.0"),
		Port:    getEnvInt("PORT", 8080),
		Version: version,
	}

	server := http.NewServer(
		serverCfg,
		authService,
		userService,
		ingestService,
		documentService,
		pageService,
		annotationService,
		searchService,
		chatService,
		analyticsService,
		db,
		redisPing,
	)

	log.Printf("Eureka %s listening on %s:%d", version, serverCfg.Host, serverCfg.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// redisPinger adapts the go-redis client to the server's health check
// interface.
type redisPinger struct {
	client *goredis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return fallback
	}
	return n
}
