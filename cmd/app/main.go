// Command app serves the StockSense prediction API.
package main

import (
	"flag"
	"log"

	"StockSense/internal/di"
	"StockSense/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed (env=%s store=%s): %v", cfg.Environment, cfg.Store.Backend, err)
	}

	// blocks until SIGINT/SIGTERM
	if err := app.Run(); err != nil {
		log.Fatalf("app error: %v", err)
	}
}
