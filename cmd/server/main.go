package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"solo-skies/skyledger/internal/api"
	"solo-skies/skyledger/internal/db"
	"solo-skies/skyledger/internal/logging"
	"solo-skies/skyledger/internal/metrics"
	"solo-skies/skyledger/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("skyledger starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Journal database. Postgres in production, sqlite anywhere else.
	journalDSN := os.Getenv("JOURNAL_DSN")
	if journalDSN == "" {
		journalDSN = "skyledger.db"
	}
	journalDB, err := db.InitORM(journalDSN)
	if err != nil {
		logging.Error("Failed to open journal database", "error", err.Error())
		log.Fatalf("failed to open journal database: %v", err)
	}

	// The sqlx read pool only exists when the journal is on Postgres.
	if os.Getenv("PG_HOST") != "" {
		if err := db.InitPostgres(); err != nil {
			logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
			log.Fatalf("failed to connect to Postgres (sqlx): %v", err)
		}
		logging.Info("Connected to Postgres (sqlx)")
	}

	upSince := time.Now()

	metricsReg := metrics.NewMetricsRegistry()
	deps, err := api.InitDependencies(metricsReg, journalDB, db.DB)
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}

	router := routes.RegisterRoutes(deps, journalDB, []byte(jwtSecret), upSince)

	// Metrics endpoint lives outside the Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Event fan-out: journal, metrics and (optionally) Redis
	g.Go(func() error {
		if err := deps.Worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("event worker: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server exited with error", "error", err.Error())
		os.Exit(1)
	}
	logging.Info("Server stopped")
}
