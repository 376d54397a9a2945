package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogger(c)
	log.Info().Msg("Initializing app...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	storage, err := database.Open(ctx, c)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("Error connecting to database")
		os.Exit(1)
	}
	defer storage.Close()

	// Seed mode: load the manifest, write it and exit
	if seedFile := config.GetString(c, "SEED_FILE", ""); seedFile != "" {
		if err := seed(storage, seedFile); err != nil {
			log.Error().Err(err).Str("file", seedFile).Msg("Seeding failed")
			storage.Close()
			os.Exit(1)
		}
		return
	}

	// Buffered so Start can still report ErrServerClosed after shutdown
	errChannel := make(chan error, 2)

	server, err := api.NewServer(storage, c)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing server")
		storage.Close()
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "APP_ENV", "") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func seed(storage database.Storage, path string) error {
	manifest, err := services.LoadManifest(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	_, err = services.NewSeeder(storage).Seed(ctx, manifest)
	return err
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
