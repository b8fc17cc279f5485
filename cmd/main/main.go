package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fix-gateway/src/commands"
	"fix-gateway/src/config"
	"fix-gateway/src/control"
	"fix-gateway/src/fixapp"
	"fix-gateway/src/hub"
	"fix-gateway/src/interfaces"
	"fix-gateway/src/ledger"
	"fix-gateway/src/logger"
	"fix-gateway/src/publishers"
	"fix-gateway/src/rest"
	"fix-gateway/src/serializers"
	"fix-gateway/src/sessions"
	"fix-gateway/src/translator"

	"github.com/quickfixgo/quickfix"
)

func main() {
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.Name, cfg.LogLevel)
	defer appLogger.Sync()

	// Core state
	registry := sessions.NewRegistry(cfg.FIX.Account, appLogger)
	orders := ledger.NewLedger(appLogger)
	tradeReports := ledger.NewTradeReportStore()
	trans := translator.NewTranslator(cfg.FIX.Account, orders, tradeReports, appLogger)

	serializer := &serializers.JSONSerializer{}

	// Event sinks
	eventHub := hub.NewHub(cfg.Hub, appLogger, serializer)
	if err := eventHub.Connect(); err != nil {
		appLogger.Critical("failed to start hub: %v", err)
		os.Exit(1)
	}
	defer eventHub.Disconnect()

	sinks := []interfaces.IPublisher{eventHub}
	if cfg.NATSEnabled() {
		natsPublisher := publishers.NewNATSPublisher(cfg.NATS, appLogger, serializer)
		if err := natsPublisher.Connect(); err != nil {
			appLogger.Critical("failed to connect to NATS: %v", err)
			os.Exit(1)
		}
		defer natsPublisher.Disconnect()
		sinks = append(sinks, natsPublisher)
	}

	// FIX engine
	sender := fixapp.NewSender()
	app := fixapp.NewApplication(cfg.FIX, registry, trans, sender, appLogger, sinks...)

	settingsFile, err := os.Open(cfg.FIX.SettingsFile)
	if err != nil {
		appLogger.Critical("failed to open FIX settings %s: %v", cfg.FIX.SettingsFile, err)
		os.Exit(1)
	}
	settings, err := quickfix.ParseSettings(settingsFile)
	settingsFile.Close()
	if err != nil {
		appLogger.Critical("failed to parse FIX settings: %v", err)
		os.Exit(1)
	}

	initiator, err := quickfix.NewInitiator(app, quickfix.NewMemoryStoreFactory(), settings, quickfix.NewNullLogFactory())
	if err != nil {
		appLogger.Critical("failed to create FIX initiator: %v", err)
		os.Exit(1)
	}
	if err := initiator.Start(); err != nil {
		appLogger.Critical("failed to start FIX initiator: %v", err)
		os.Exit(1)
	}
	defer initiator.Stop()

	// Command API
	dispatcher := commands.NewDispatcher(registry, orders, sender, appLogger)
	restHandler := rest.NewHandler(cfg.MConfig, dispatcher, appLogger)
	restHandler.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		restHandler.Stop(ctx)
	}()

	// Health service
	controlService, err := control.NewGRPCService(cfg, appLogger, registry)
	if err != nil {
		appLogger.Critical("failed to create control service: %v", err)
		os.Exit(1)
	}
	if err := controlService.Start(); err != nil {
		appLogger.Critical("failed to start control service: %v", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		controlService.Stop(ctx)
	}()

	appLogger.Info("gateway running. REST API: %s:%d, hub: %s:%d, gRPC: %s:%d",
		cfg.Host, cfg.Port, cfg.Hub.Host, cfg.Hub.Port, cfg.GRPC_Host, cfg.GRPC_Port)
	appLogger.Info("Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	appLogger.Info("shutting down...")
}
