package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/config"
	"github.com/karanvs/stockbook/internal/repository/mongodb"
	"github.com/karanvs/stockbook/internal/repository/sheetdb"
	"github.com/karanvs/stockbook/internal/repository/sheets"
	"github.com/karanvs/stockbook/internal/scheduler"
	"github.com/karanvs/stockbook/internal/server/handlers"
	"github.com/karanvs/stockbook/internal/server/router"
	accountssvc "github.com/karanvs/stockbook/internal/service/accounts"
	authsvc "github.com/karanvs/stockbook/internal/service/auth"
	inventorysvc "github.com/karanvs/stockbook/internal/service/inventory"
	reportingsvc "github.com/karanvs/stockbook/internal/service/reporting"
	"github.com/karanvs/stockbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store sheetdb.Store
	switch cfg.Sheets.Driver {
	case config.DriverSheetsAPI:
		store, err = sheets.NewGoogleSheetStore(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets api store", zap.Error(err))
		}
	default:
		store = sheetdb.NewClient(cfg.SheetAPI, baseLogger.Named("repo.sheetdb"))
	}

	var sessions authsvc.SessionStore
	var sink scheduler.ReportSink

	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sessions = mongoRepo
		sink = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, sessions are in-memory and daily snapshots disabled")
		sessions = authsvc.NewMemorySessionStore()
	}

	inventorySvc := inventorysvc.NewService(store, cfg.Sheets, cfg.SheetAPI.DriveFolderID, baseLogger.Named("svc.inventory"))
	authSvc := authsvc.NewService(store, sessions, cfg.Sheets.Login, baseLogger.Named("svc.auth"))
	accountsSvc := accountssvc.NewService(store, cfg.Sheets.Login, baseLogger.Named("svc.accounts"))
	reportingSvc := reportingsvc.NewService(inventorySvc, cfg.Reporting.LowStockThreshold, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		Dashboard: handlers.NewDashboardHandler(reportingSvc, baseLogger.Named("handlers.dashboard")),
		Inventory: handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory")),
		History:   handlers.NewHistoryHandler(inventorySvc, baseLogger.Named("handlers.history")),
		Accounts:  handlers.NewAccountsHandler(accountsSvc, baseLogger.Named("handlers.accounts")),
	}, authSvc, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, sink, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

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
