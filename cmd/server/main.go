package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/classavo-io/classavo-e2e/internal/config"
	"github.com/classavo-io/classavo-e2e/internal/mockapp"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "."
	}

	if err := config.Load(configPath); err != nil {
		log.Printf("Failed to load configuration from file: %v", err)
		// Continue with defaults and environment variables
	}

	cfg := config.Get()
	if cfg == nil {
		log.Fatal("No configuration available")
	}

	// Set Gin mode from config
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	server, err := mockapp.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create mock platform server: %v", err)
	}

	addr := cfg.Server.GetServerAddr()
	log.Printf("[server] Classavo mock platform listening on %s (env=%s)", addr, cfg.App.Env)
	if err := server.Router().Run(addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
