package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doshyw/celeste-progression/internal/config"
	"github.com/doshyw/celeste-progression/internal/handlers"
	"github.com/doshyw/celeste-progression/internal/logger"
	"github.com/doshyw/celeste-progression/internal/middleware"
	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/rules"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log, closeLog, err := logger.Setup(cfg)
	if err != nil {
		panic(err)
	}
	defer closeLog()

	log.Info("Starting Celeste Progression API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"catalog_path", cfg.CatalogPath)

	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		log.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	log.Info("Catalog loaded", "areas", len(cat.Areas()), "entries", len(cat.Entries()))

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(cat, log))
	mux.Handle("/v1/catalog", handlers.NewCatalogHandler(cat, log))
	mux.Handle("/v1/progression", handlers.NewProgressionHandler(cat, rules.PlayerID(cfg.PlayerID), log))

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
