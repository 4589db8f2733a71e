package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/inventory_admin/internal/config"
	"github.com/Skotchmaster/inventory_admin/internal/db"
	"github.com/Skotchmaster/inventory_admin/internal/hash"
	"github.com/Skotchmaster/inventory_admin/internal/httpserver"
	"github.com/Skotchmaster/inventory_admin/internal/logging"
	loggingmw "github.com/Skotchmaster/inventory_admin/internal/middleware/logging"
	"github.com/Skotchmaster/inventory_admin/internal/mykafka"
	"github.com/Skotchmaster/inventory_admin/internal/repo"
	"github.com/Skotchmaster/inventory_admin/internal/service"
	"github.com/Skotchmaster/inventory_admin/internal/view"
)

func main() {
	cfg := config.MustLoad(".env")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(ctx, gdb)
	}
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	hasher, err := hash.New(cfg.PasswordStorage)
	if err != nil {
		log.Fatalf("password storage: %v", err)
	}

	var events mykafka.Publisher = mykafka.Discard{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, logger.With("component", "kafka"))
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		events = producer
	} else {
		logger.Info("kafka disabled", "reason", "KAFKA_BROKERS is empty")
	}

	svcs := service.New(repo.NewStore(gdb), hasher, events)

	e := echo.New()
	e.HideBanner = true
	renderer, err := newRenderer(cfg.TemplatesGlob)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	e.Renderer = renderer
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		DB:       gdb,
		Services: svcs,
		Auth: &service.AuthService{
			Users:         svcs.Users,
			Hasher:        hasher,
			SessionSecret: cfg.SessionSecret,
			SessionTTL:    cfg.SessionTTL,
			Events:        events,
		},
		Dashboard:     service.NewDashboard(svcs),
		SessionSecret: cfg.SessionSecret,
		CookieSecure:  cfg.CookieSecure,
		LoginRate:     cfg.LoginRate,
		LoginBurst:    cfg.LoginBurst,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

func newRenderer(glob string) (echo.Renderer, error) {
	if glob == "" {
		return view.JSON{}, nil
	}
	return view.NewTemplates(glob)
}
