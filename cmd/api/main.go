package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/kjbranchesi/alf-coach-backend/config"
	"github.com/kjbranchesi/alf-coach-backend/internal/auth"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/repository"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/service"
	"github.com/kjbranchesi/alf-coach-backend/internal/bootstrap"
	"github.com/kjbranchesi/alf-coach-backend/internal/coach"
	"github.com/kjbranchesi/alf-coach-backend/internal/logging"
	"github.com/kjbranchesi/alf-coach-backend/internal/retention"
	"github.com/kjbranchesi/alf-coach-backend/internal/showcase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.App.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal("redis unavailable", "error", err)
	}
	defer rdb.Close()

	// With Firebase configured, Firestore is the system of record and token
	// auth is enforced. Without it (local development) the service runs
	// entirely on Redis with header-based identity, mirroring the SPA's
	// local-storage fallback mode.
	var (
		repo       repository.Repository
		authClient *fbauth.Client
	)
	if cfg.Firebase.CredentialsPath != "" {
		app, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatal("firebase init failed", "error", err)
		}
		authClient, err = auth.AuthClient(ctx, app)
		if err != nil {
			log.Fatal("firebase auth client failed", "error", err)
		}
		fs, err := bootstrap.OpenFirestore(ctx, app)
		if err != nil {
			log.Fatal("firestore unavailable", "error", err)
		}
		defer fs.Close()
		repo = repository.NewFirestoreRepo(fs)
	} else {
		if cfg.App.Environment == "production" {
			log.Fatal("FIREBASE_CREDENTIALS_PATH is required in production")
		}
		log.Warn("no Firebase credentials; using Redis store with header auth")
		repo = repository.NewRedisRepo(rdb)
	}

	// Surface exemplar authoring mistakes at startup, not in the gallery.
	results, err := showcase.ValidateAll()
	if err != nil {
		log.Fatal("hero project library failed to build", "error", err)
	}
	for id, res := range results {
		for _, e := range res.Errors {
			log.Error("hero project invalid", "id", id, "error", e)
		}
		for _, w := range res.Warnings {
			log.Warn("hero project warning", "id", id, "warning", w)
		}
	}

	bpService := service.NewBlueprintService(repo, cfg.Retention.Window, log)
	coachService := coach.NewService(coach.NewGeminiClient(&cfg.Gemini), log)

	sched := retention.NewScheduler(repo, cfg.Retention.Window, cfg.Retention.PurgeSpec, log)
	if err := sched.Start(); err != nil {
		log.Fatal("retention scheduler failed", "error", err)
	}
	defer sched.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "alf-coach-backend",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Blueprints:     bpService,
		Coach:          coachService,
		AuthClient:     authClient,
		Redis:          rdb,
		Log:            log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("listening", "port", cfg.Server.Port, "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
