package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/api"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/config"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/demstore"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/monitoring"
)

var (
	listen        = flag.String("listen", ":8080", "Listen address")
	dbFile        = flag.String("db", "dems.db", "Path to the DEM catalog database")
	configFile    = flag.String("config", "", "Path to a tuning config JSON file (defaults built in)")
	migrationsDir = flag.String("migrations", "db/migrations", "Path to the schema migrations directory")
	verbose       = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()
	monitoring.Verbose = *verbose

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	cfg := config.EmptyTuningConfig()
	if *configFile != "" {
		var err error
		cfg, err = config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
	}

	store, err := demstore.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open DEM catalog: %v", err)
	}
	defer store.Close()

	if err := store.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("failed to migrate DEM catalog: %v", err)
	}

	mux := http.NewServeMux()
	if err := store.AttachAdminRoutes(mux); err != nil {
		log.Fatalf("failed to attach admin routes: %v", err)
	}
	apiMux := api.NewServer(store, cfg).ServeMux()
	mux.Handle("/api/", apiMux)

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var g errgroup.Group
	g.Go(func() error {
		monitoring.Logf("listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		monitoring.Logf("shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	monitoring.Logf("graceful shutdown complete")
}
