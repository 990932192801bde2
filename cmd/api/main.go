// Main entry point for the discovery API.
// Bootstraps all components and starts the server.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imadgeboyega/gamelink-backend/internal/auth"
	"github.com/imadgeboyega/gamelink-backend/internal/common/database"
	"github.com/imadgeboyega/gamelink-backend/internal/config"
	"github.com/imadgeboyega/gamelink-backend/internal/discovery"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting GameLink Discovery API")
	log.Println("========================================")

	// 1. Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found (%v), using environment variables", err)
	}

	// 2. Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Println("✅ Configuration loaded")

	// 3. Connect to PostgreSQL
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL")

	// 4. Connect to Redis (optional: criteria persistence + analytics)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v); criteria persistence and analytics disabled", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis")
		}
	}

	// 5. Wire the discovery service. Everything is explicitly
	// constructed here; no package-level singletons.
	repo := discovery.NewPostgresRepository(db)
	cachedProfiles := discovery.NewCachedProfileRepository(repo, cfg.ProfileCacheEntries, cfg.ProfileCacheTTL)

	var analytics discovery.Analytics
	if redisClient != nil && cfg.EnableAnalytics {
		analytics = discovery.NewRedisAnalytics(redisClient)
	} else {
		analytics = discovery.NewNopAnalytics()
	}

	service := discovery.NewService(
		cachedProfiles,
		discovery.NewRankingEngine(),
		discovery.NewPresetStore(repo),
		discovery.NewHistoryLog(repo),
		discovery.NewCriteriaStore(redisClient),
		analytics,
		cfg.CandidatePageSize,
	)

	// 6. Auth middleware
	authService := auth.NewService(&auth.Config{JWTSecret: cfg.JWTSecret})
	authMiddleware := auth.NewMiddleware(authService)

	// 7. Router
	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	discovery.RegisterRoutes(router, discovery.NewHandler(service), authMiddleware)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// 8. Start and wait for shutdown
	go func() {
		log.Printf("🌐 Listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("❌ Forced shutdown: ", err)
	}
	log.Println("✅ Server stopped")
}
