package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "envy/internal/config"
	router "envy/internal/http"
	"envy/internal/http/handlers"
	"envy/internal/repositories"
	"envy/internal/services"
	"envy/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

type stateRepository interface {
	store.Repository
	handlers.StorageProbe
}

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx := context.Background()
	repo, closeRepo, err := openStorage(ctx, env)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeRepo()

	st, err := store.New(ctx, repo)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	log.Printf("store ready: driver=%s properties=%d bookings=%d", repo.Driver(), len(st.Properties()), len(st.Bookings()))

	gate, err := services.NewAdminGate(env.SessionSecret, env.AdminSessionTTL)
	if err != nil {
		log.Fatalf("admin gate: %v", err)
	}
	if env.SessionSecret == "" {
		log.Println("warning: SESSION_SECRET not set, admin sessions end on restart")
	}

	notifier := services.NewNotifier(melody.New())
	unsubscribe := notifier.Attach(st)
	defer unsubscribe()

	hd := &handlers.Handler{
		Store:    st,
		Gate:     gate,
		Notifier: notifier,
		Storage:  repo,
		BaseURL:  env.PublicBaseURL,
	}
	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = notifier.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}

// openStorage builds the repository selected by STORAGE_DRIVER.
func openStorage(ctx context.Context, env intconfig.Env) (stateRepository, func(), error) {
	noop := func() {}
	switch env.StorageDriver {
	case "", "file":
		repo, err := repositories.NewFileStateRepository(env.StateDir, env.StorageKey)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil

	case "memory":
		return repositories.NewMemoryStateRepository(), noop, nil

	case "mysql":
		db, err := intconfig.OpenMySQL(ctx, env.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		repo := repositories.NewMySQLStateRepository(db, env.StorageKey)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return repo, func() { _ = db.Close() }, nil

	case "postgres":
		db, err := intconfig.OpenPostgres(ctx, env.PostgresDSN, env.GinMode)
		if err != nil {
			return nil, noop, err
		}
		repo := repositories.NewGormStateRepository(db, env.StorageKey)
		if err := repo.Migrate(ctx); err != nil {
			return nil, noop, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repo, closeFn, nil

	case "redis":
		rdb, err := intconfig.ConnectRedis(ctx, env)
		if err != nil {
			return nil, noop, err
		}
		return repositories.NewRedisStateRepository(rdb, env.StorageKey), func() { _ = rdb.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown STORAGE_DRIVER %q (file, memory, mysql, postgres, redis)", env.StorageDriver)
	}
}
