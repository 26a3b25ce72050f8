package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/bankofdiddy/account-registry/src/internal/adapter/http/controller"
	"github.com/bankofdiddy/account-registry/src/internal/adapter/http/middleware"
	"github.com/bankofdiddy/account-registry/src/internal/adapter/http/router"
	"github.com/bankofdiddy/account-registry/src/internal/adapter/repository/flatfile"
	"github.com/bankofdiddy/account-registry/src/internal/adapter/repository/postgres"
	"github.com/bankofdiddy/account-registry/src/internal/config"
	"github.com/bankofdiddy/account-registry/src/internal/domain"
	"github.com/bankofdiddy/account-registry/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var store domain.RecordStore
	if cfg.DatabaseDSN != "" {
		if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		defer db.Close()
		store = postgres.NewRecordStore(db)
	} else {
		store = flatfile.NewRecordStore(cfg.RecordsFile)
	}

	branchRepo, err := flatfile.NewBranchRepository(cfg.BranchFile)
	if err != nil {
		log.Fatalf("bootstrap branch directory: %v", err)
	}

	registrySvc, err := services.NewRegistryService(ctx, store, branchRepo)
	if err != nil {
		log.Fatalf("initialize registry: %v", err)
	}
	branchSvc := services.NewBranchService(branchRepo)

	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey)
	mux := router.New(
		controller.NewRegistryController(registrySvc),
		controller.NewBranchController(branchSvc),
		authMiddleware,
	)

	log.Printf("account registry listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, middleware.RequestID(mux)); err != nil {
		log.Fatalf("listen and serve: %v", err)
	}
}
