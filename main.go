package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/songmood/catalog"
	"github.com/danielhkuo/songmood/cliparse"
	"github.com/danielhkuo/songmood/db"
	"github.com/danielhkuo/songmood/metric"
	"github.com/danielhkuo/songmood/middleware"
	"github.com/danielhkuo/songmood/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the configured database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Load songs and taxonomy
	cat := catalog.Load(context.Background(), cfg.SongsPath, cfg.TaxonomyPath)
	slog.Info("Catalog loaded",
		"songs", humanize.Comma(int64(cat.Total())),
		"categories", len(cat.Taxonomy.Categories),
		"path", cfg.SongsPath,
	)
	if stored, err := db.CountResponses(context.Background(), dbConn); err == nil && stored > 0 {
		slog.Info("Resuming session", "stored_rows", humanize.Comma(int64(stored)))
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, cat, metric.New())

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins)(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening",
		"port", cfg.Port,
		"admin_key_set", cfg.AdminKey != "",
		"trusted_proxies", len(cfg.TrustedProxies),
		"cors_origins", len(cfg.CORSOrigins),
	)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
