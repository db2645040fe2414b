package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/dayflow/backend/api/handler"
	"github.com/dayflow/backend/domain"
	execAdvisor "github.com/dayflow/backend/internal/advisor"
	"github.com/dayflow/backend/internal/config"
	"github.com/dayflow/backend/internal/infrastructure/boltdb"
	"github.com/dayflow/backend/internal/infrastructure/monitor"
	"github.com/dayflow/backend/internal/router"
	"github.com/dayflow/backend/internal/services"
	"github.com/dayflow/backend/internal/services/lifecycle"
	"github.com/dayflow/backend/pkg/httpcontext"
	"github.com/dayflow/backend/pkg/logger"
	boltRepo "github.com/dayflow/backend/repository/bolt"
	advisorUC "github.com/dayflow/backend/usecase/advisor"
	insightsUC "github.com/dayflow/backend/usecase/insights"
	plannerUC "github.com/dayflow/backend/usecase/planner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	clock := domain.SystemClock()

	store, err := boltdb.Open(cfg.Storage.Path)
	if err != nil {
		zapLogger.Fatal("failed to open datastore", zap.Error(err))
	}
	manager.Register("storage", func(ctx context.Context) error {
		return store.Close()
	})

	mon := monitor.New(store, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	scheduleRepo := boltRepo.NewScheduleRepository(store, clock)
	statsRepo := boltRepo.NewStatsRepository(store)
	streakRepo := boltRepo.NewStreakRepository(store)

	planner := plannerUC.New(scheduleRepo, clock, zapLogger)
	insights := insightsUC.New(scheduleRepo, statsRepo, streakRepo, clock, zapLogger)
	textAdvisor := execAdvisor.NewExecAdvisor(cfg.Advisor.Command, cfg.Advisor.Args, cfg.Advisor.Timeout, zapLogger)
	advisor := advisorUC.New(scheduleRepo, textAdvisor, clock, zapLogger)

	if cfg.Tracker.Enabled {
		tracker := services.NewTracker(scheduleRepo, insights, mon, clock, zapLogger, services.TrackerConfig{
			Interval: cfg.Tracker.Interval,
		})
		tracker.Start()
		manager.Register("tracker", func(ctx context.Context) error {
			tracker.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Schedule: apiHandler.NewScheduleHandler(planner, clock, ctxAdapter, zapLogger),
		Insights: apiHandler.NewInsightsHandler(insights, clock, ctxAdapter, zapLogger),
		Pomodoro: apiHandler.NewPomodoroHandler(planner, insights, ctxAdapter, zapLogger),
		Advisor:  apiHandler.NewAdvisorHandler(advisor, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
