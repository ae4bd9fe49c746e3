// The worker runs the nightly retention sweep independent of user traffic.
// With -once it runs one sweep and exits, for cron-less deployments.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/kjbranchesi/alf-coach-backend/config"
	"github.com/kjbranchesi/alf-coach-backend/internal/auth"
	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/repository"
	"github.com/kjbranchesi/alf-coach-backend/internal/bootstrap"
	"github.com/kjbranchesi/alf-coach-backend/internal/logging"
	"github.com/kjbranchesi/alf-coach-backend/internal/retention"
)

func main() {
	once := flag.Bool("once", false, "run one sweep and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.App.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	var repo repository.Repository
	if cfg.Firebase.CredentialsPath != "" {
		app, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatal("firebase init failed", "error", err)
		}
		fs, err := bootstrap.OpenFirestore(ctx, app)
		if err != nil {
			log.Fatal("firestore unavailable", "error", err)
		}
		defer fs.Close()
		repo = repository.NewFirestoreRepo(fs)
	} else {
		rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			log.Fatal("redis unavailable", "error", err)
		}
		defer rdb.Close()
		repo = repository.NewRedisRepo(rdb)
	}

	sched := retention.NewScheduler(repo, cfg.Retention.Window, cfg.Retention.PurgeSpec, log)

	if *once {
		purged, err := sched.Sweep()
		if err != nil {
			log.Fatal("sweep failed", "error", err)
		}
		log.Info("sweep complete", "purged", purged)
		return
	}

	if err := sched.Start(); err != nil {
		log.Fatal("retention scheduler failed", "error", err)
	}
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("worker shutting down")
}
