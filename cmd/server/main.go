package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/server"
)

func main() {
	// Parse flags
	port := flag.String("port", "", "Server port (overrides PORT)")
	host := flag.String("host", "", "Listen host (overrides HOST)")
	apps := flag.String("apps", "", "Directory of app manifests (overrides DESKTOP_APPS_DIR)")
	options := flag.String("options", "", "Desktop options file (overrides DESKTOP_OPTIONS_FILE)")
	dev := flag.Bool("dev", false, "Development mode (colored logs, debug level)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Invalid environment configuration, using defaults: %v", err)
		cfg = config.Default()
	}

	if *port != "" {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *apps != "" {
		cfg.Desktop.AppsDir = *apps
	}
	if *options != "" {
		cfg.Desktop.OptionsFile = *options
	}
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
