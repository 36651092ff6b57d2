package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawhub/pet-adoption-platform/internal/api"
	"github.com/pawhub/pet-adoption-platform/internal/billing"
	"github.com/pawhub/pet-adoption-platform/internal/clinic"
	"github.com/pawhub/pet-adoption-platform/internal/config"
	"github.com/pawhub/pet-adoption-platform/internal/db"
	redisclient "github.com/pawhub/pet-adoption-platform/internal/redis"
	"github.com/pawhub/pet-adoption-platform/internal/shelter"
	"github.com/pawhub/pet-adoption-platform/internal/user"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s", cfg.Env, cfg.HTTPPort)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

	sessions := redisclient.NewRedisSessionStore(rdb, cfg.SessionTTL)

	router := api.NewRouter(api.RouterConfig{
		Shelter:  shelter.NewService(shelter.NewPgRepository(pgPool)),
		Clinic:   clinic.NewService(clinic.NewPgRepository(pgPool)),
		Users:    user.NewService(user.NewPgRepository(pgPool)),
		Billing:  billing.NewService(billing.NewPgRepository(pgPool)),
		Sessions: sessions,
		PgPool:   pgPool,
		Redis:    rdb,
		Env:      cfg.Env,
		Version:  version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
