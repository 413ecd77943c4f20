package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	gatewayclient "github.com/yatraplan/trip-planner-api/internal/adapters/aigateway"
	"github.com/yatraplan/trip-planner-api/internal/adapters/httpapi"
	memkvstore "github.com/yatraplan/trip-planner-api/internal/adapters/memory/kvstore"
	postgres "github.com/yatraplan/trip-planner-api/internal/adapters/postgres"
	pgkvstore "github.com/yatraplan/trip-planner-api/internal/adapters/postgres/kvstore"
	rediskvstore "github.com/yatraplan/trip-planner-api/internal/adapters/redis/kvstore"
	"github.com/yatraplan/trip-planner-api/internal/app/planner"
	"github.com/yatraplan/trip-planner-api/internal/app/tripcache"
	platformclock "github.com/yatraplan/trip-planner-api/internal/platform/clock"
	"github.com/yatraplan/trip-planner-api/internal/platform/config"
	kvstoreport "github.com/yatraplan/trip-planner-api/internal/ports/out/kvstore"
)

func main() {
	// Load .env if present; system environment wins otherwise.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	clk := platformclock.NewSystemClock()

	var (
		kv      kvstoreport.Store
		cleanup func()
	)
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			log.Fatalf("invalid postgres config: %v", err)
		}
		cleanup = pool.Close
		kv = pgkvstore.NewStore(pool)
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		cleanup = func() { _ = client.Close() }
		kv = rediskvstore.NewStore(client)
	default:
		kv = memkvstore.NewStore()
	}
	if cleanup != nil {
		defer cleanup()
	}

	cache := tripcache.New(kv, clk)
	gateway := gatewayclient.NewClient(cfg.AIGatewayURL, cfg.AIGatewayAPIKey, cfg.AIModel)
	plannerSvc := planner.NewService(gateway, cache)

	api := httpapi.NewServer(plannerSvc)
	handler := httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{
		// Generation is expensive upstream: 5 requests/minute per client.
		GenerateLimiter: httpapi.NewRateLimiter(rate.Every(12*time.Second), 5),
	})

	// The browser client calls this API directly.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"}, // lock down in production
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("api listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
