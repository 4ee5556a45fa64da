package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClaudioCeppi83/gastro-app/internal/billing"
	"github.com/ClaudioCeppi83/gastro-app/internal/config"
	"github.com/ClaudioCeppi83/gastro-app/internal/database"
	"github.com/ClaudioCeppi83/gastro-app/internal/logger"
	"github.com/ClaudioCeppi83/gastro-app/internal/messaging"
	"github.com/ClaudioCeppi83/gastro-app/internal/services/catalog"
	"github.com/ClaudioCeppi83/gastro-app/internal/services/order"
	"github.com/ClaudioCeppi83/gastro-app/internal/suggestions"
)

func main() {
	var (
		configPath     = flag.String("config", "config.yaml", "Path to the configuration file")
		port           = flag.Int("port", 0, "HTTP port (overrides config)")
		migrationsPath = flag.String("migrations", "migrations", "Path to the SQL migrations directory")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("gastro-app")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting gastro-app", requestID, map[string]interface{}{
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, *migrationsPath, requestID); err != nil {
		log.Error("service_failed", "Service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, migrationsPath, requestID string) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var publisher *messaging.Publisher
	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		publisher = messaging.NewPublisher(conn, log)
	}

	suggester := suggestions.New(cfg, log)
	calculator := billing.New(cfg.TaxRate(), cfg.TipRate())

	catalogService := catalog.NewService(catalog.NewRepository(db), log)
	orderService := order.NewService(order.NewRepository(db), publisher, suggester, calculator, log)

	mux := http.NewServeMux()
	catalog.NewHandler(catalogService, log).RegisterRoutes(mux)
	order.NewHandler(orderService, log).RegisterRoutes(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mux,
	}

	go func() {
		log.Info("server_listening", fmt.Sprintf("HTTP server started on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
