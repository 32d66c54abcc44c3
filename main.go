package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/middleware"

	"github.com/tapnserve/pos/internal/api"
	"github.com/tapnserve/pos/internal/console"
	"github.com/tapnserve/pos/internal/menu"
	"github.com/tapnserve/pos/internal/orders"
	"github.com/tapnserve/pos/internal/session"
	"github.com/tapnserve/pos/internal/setup"
	"github.com/tapnserve/pos/internal/staff"
	"github.com/tapnserve/pos/internal/stats"
)

const (
	appNamespace = "POS"
	appName      = "pos"
	appVersion   = "0.1.0"
)

func main() {
	config, err := aqm.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := aqm.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	backendURL, ok := config.GetString("backend.url")
	if !ok || backendURL == "" {
		backendURL = "http://localhost:8080"
	}

	sessionPath, ok := config.GetString("session.path")
	if !ok || sessionPath == "" {
		sessionPath = "pos-session.json"
	}

	refreshEvery := session.DefaultRefreshInterval
	if raw, ok := config.GetString("session.refresh_interval"); ok && raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			refreshEvery = d
		}
	}

	// The store restores any persisted session when the lifecycle starts it.
	store := session.NewStore(backendURL, sessionPath, refreshEvery, logger)
	client := api.NewClient(backendURL, store, logger)

	notifier := console.NewBufferedNotifier()
	parser := console.NewParser(console.ParserDeps{
		Sessions: store,
		Menu:     menu.NewDataAccess(client),
		Staff:    staff.NewDataAccess(client),
		Orders:   orders.NewDataAccess(client),
		Setup:    setup.NewDataAccess(client),
		Stats:    stats.NewDataAccess(client),
		Notifier: notifier,
	}, logger)

	handler := console.NewHandler(parser, notifier, logger)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: false,
	})

	options := []aqm.Option{
		aqm.WithConfig(config),
		aqm.WithLogger(logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port", handler),
		aqm.WithLifecycle(store),
		aqm.WithHealthChecks(appName),
	}

	ms := aqm.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
