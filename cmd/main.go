package main

import (
	"context"
	"os"

	"github.com/desertthunder/spotdash/internal/client"
	"github.com/desertthunder/spotdash/internal/services"
	"github.com/desertthunder/spotdash/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := os.Getenv("SPOTDASH_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	config, err := shared.LoadOrDefault(configPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		config = shared.DefaultConfig()
	}

	if err := shared.ApplyLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("ignoring log level", "error", err)
	}

	var spotifyService services.OAuthService
	if config.Credentials.Spotify.Valid() {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			spotifyService = svc
		} else {
			logger.Warn("spotify service unavailable", "error", err)
		}
	}

	api := client.New(config.Client.BaseURL, nil,
		client.WithSession(config.Server.CookieName, config.Client.SessionID))

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Spotify:    spotifyService,
		API:        api,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "spotdash",
		Usage:    "Spotify dashboard, player controls and search",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
