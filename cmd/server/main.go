package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/config"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/logx"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/middleware"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/push"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/scheduler"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/store"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/router"

	// Watering
	wateringCtrlImp "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/watering/controllerImp"
	wateringSvcImp "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/watering/serviceImp"

	// Reminders
	reminderSvcImp "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/reminder/serviceImp"

	// Health
	healthCtrlImp "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/health/controllerImp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1) Config
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := logx.New(logx.Config{Level: cfg.LogLevel, Console: cfg.LogConsole}, nil)

	// 2) Store
	st, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("store")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("store close")
		}
	}()

	// 3) Push provider
	sender := push.NewFCM(ctx, push.FCMConfig{
		ProjectID:  cfg.Firebase.ProjectID,
		RatePerSec: cfg.PushRatePerSec,
	}, cfg.Firebase.Credentials.TokenSource)

	// 4) Services
	wSvc := wateringSvcImp.NewWateringService(st.Crops, st.UserCrops, logx.Component(logger, "watering"))
	rSvc := reminderSvcImp.NewReminderService(st.Farmers, st.UserCrops, sender, logx.Component(logger, "reminder"),
		reminderSvcImp.WithBatchSize(cfg.SweepBatchSize))

	// 5) Scheduler
	sched := scheduler.New(scheduler.Config{Timezone: cfg.Timezone, DefaultTimeout: cfg.SweepTimeout}, logx.Component(logger, "scheduler"))
	if _, err := sched.Add("watering-reminders", cfg.SweepSchedule, cfg.SweepTimeout, func(ctx context.Context) error {
		_, err := rSvc.Sweep(ctx)
		return err
	}); err != nil {
		logger.Fatal().Err(err).Str("spec", cfg.SweepSchedule).Msg("schedule sweep")
	}

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(logx.Component(logger, "http")))

	wCtrl := wateringCtrlImp.New(wSvc, logx.Component(logger, "http"))
	hCtrl := healthCtrlImp.NewHealthCtrl(map[string]healthCtrlImp.Check{"database": st.Check})
	r := router.New(e, wCtrl, hCtrl)

	// 7) Start
	sched.Start(ctx)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("store", st.Driver).Msg("listening")
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("scheduler stop")
	}
}
