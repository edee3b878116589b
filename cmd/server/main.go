package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/AnsarMahir/doc4all-dashboard/internal/config"
	"github.com/AnsarMahir/doc4all-dashboard/internal/repository/mongodb"
	"github.com/AnsarMahir/doc4all-dashboard/internal/repository/sheets"
	"github.com/AnsarMahir/doc4all-dashboard/internal/scheduler"
	"github.com/AnsarMahir/doc4all-dashboard/internal/server/handlers"
	"github.com/AnsarMahir/doc4all-dashboard/internal/server/router"
	"github.com/AnsarMahir/doc4all-dashboard/internal/service/dashboard"
	"github.com/AnsarMahir/doc4all-dashboard/internal/service/fetcher"
	profilesvc "github.com/AnsarMahir/doc4all-dashboard/internal/service/profile"
	"github.com/AnsarMahir/doc4all-dashboard/pkg/clients/doc4all"
	"github.com/AnsarMahir/doc4all-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(os.Getenv("APP_DEBUG") != ""))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	apiClient := doc4all.NewClient(cfg.Upstream)
	fetch := fetcher.New(apiClient, baseLogger.Named("svc.fetcher"))

	// The snapshot archive is optional; without it dashboards still work,
	// only the ops trail is missing.
	var archiveRepo *mongodb.MongoDBRepository
	if cfg.ArchiveEnabled() {
		archiveRepo, err = mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := archiveRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		baseLogger.Info("snapshot archive enabled", zap.String("db", cfg.MongoDB.DBName))
	} else {
		baseLogger.Warn("mongodb uri missing, snapshot archiving disabled")
	}

	var archive dashboard.Archiver
	if archiveRepo != nil {
		archive = archiveRepo
	}

	dashboardSvc := dashboard.NewService(fetch, apiClient, archive, baseLogger.Named("svc.dashboard"))
	profileSvc := profilesvc.NewService(apiClient, baseLogger.Named("svc.profile"))

	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, baseLogger.Named("handlers.dashboard"))
	profileHandler := handlers.NewProfileHandler(profileSvc, baseLogger.Named("handlers.profile"))
	engine := router.New(cfg, dashboardHandler, profileHandler, baseLogger.Named("router"))

	// The daily ops report needs both the archive and the sheets export.
	if archiveRepo != nil && cfg.SheetsEnabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}

		sched := scheduler.NewScheduler(cfg.Reporting, archiveRepo, sheetsRepo, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Warn("ops reporting disabled, archive or sheets export not configured")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
