package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comanda/internal/api"
	"comanda/internal/config"
	"comanda/internal/database"
	"comanda/internal/monitoring"
	"comanda/internal/realtime"
	"comanda/internal/repository"
	"comanda/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	store := repository.NewStore(db)

	hub := realtime.NewHub()
	go hub.Run(ctx)

	rules := workflow.Rules{StrictTransitions: cfg.Workflow.StrictTransitions}
	retention := time.Duration(cfg.Cleanup.RetentionMinutes) * time.Minute
	server := api.NewServer(store, hub, rules, cfg.Cleanup.Secret, retention)

	var scheduler *cron.Cron
	if cfg.Cleanup.Enabled {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Cleanup.Schedule, func() {
			report, err := store.PurgeOlderThan(time.Now().Add(-retention))
			if err != nil {
				log.Printf("Scheduled cleanup failed: %v", err)
				return
			}
			if report.DeletedOrders > 0 {
				monitoring.RecordCleanup(report.DeletedOrders, report.DeletedItems, report.DeletedPayments)
				log.Printf("Cleanup removed %d orders, %d items, %d payments in %dms",
					report.DeletedOrders, report.DeletedItems, report.DeletedPayments, report.DurationMs)
			}
		})
		if err != nil {
			log.Fatalf("Invalid cleanup schedule %q: %v", cfg.Cleanup.Schedule, err)
		}
		scheduler.Start()
	}

	go startMetricsServer(cfg.Server.MetricsPort)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		if scheduler != nil {
			scheduler.Stop()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}

		cancel()
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
