// Package main is the entry point for mazeband.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/mazeband/internal/cli"
	"github.com/samdwyer/mazeband/internal/telemetry"
)

// Set by the release build via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_MAZEBAND_API_KEY available
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Only export traces when an API key is configured
	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx, version)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	if code := cli.Execute(ctx, cli.NewRootCommand()); code != 0 {
		// os.Exit skips deferred calls
		stop()
		os.Exit(code)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// It returns false when no API key is set.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_MAZEBAND_API_KEY")
	if apiKey == "" {
		return false
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	dataset := os.Getenv("HONEYCOMB_MAZEBAND_DATASET")
	if dataset == "" {
		dataset = "mazeband"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
