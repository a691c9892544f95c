package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"docucortex-be/internal/bootstrap"
	"docucortex-be/internal/config"
	"docucortex-be/internal/server"
	"docucortex-be/internal/tracer"
	"docucortex-be/pkg/database"
)

func main() {
	// 0. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Configuration
	cfg := config.Load()

	// 2. Database
	gormDB, err := database.NewGormDB(database.GormConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Background workers, stopped on shutdown
	bgCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := container.RunBackground(bgCtx); err != nil {
		log.Panicf("Unable to start background services: %v", err)
	}

	// 5. HTTP server
	srv := server.New(cfg, container)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Shutting down...")
		cancel()
		_ = srv.GetApp().Shutdown()
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
	_ = container.Logger.Sync()
}
