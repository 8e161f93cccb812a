package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/spotdash/internal/repositories"
	"github.com/desertthunder/spotdash/internal/server"
	"github.com/desertthunder/spotdash/internal/shared"
	"github.com/desertthunder/spotdash/internal/web"
	"github.com/urfave/cli/v3"
)

const defaultPurgeAfter = 30 * 24 * time.Hour

// Serve runs the dashboard until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	spotify, err := r.requireSpotify()
	if err != nil {
		return err
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	sessions := repositories.NewSessionRepository(db)
	if after := cmd.Duration("purge-after"); after > 0 {
		if n, err := sessions.PurgeDeleted(time.Now().Add(-after)); err != nil {
			r.logger.Warn("failed to purge sessions", "error", err)
		} else if n > 0 {
			r.logger.Info("purged logged out sessions", "count", n)
		}
	}

	app, err := web.New(web.Options{
		OAuth:         spotify,
		Sessions:      sessions,
		Logger:        r.logger,
		CookieName:    r.config.Server.CookieName,
		SecureCookies: r.config.Server.SecureCookies,
	})
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("→ Dashboard at http://%s\n", addr)
	return server.Run(ctx, srv, shared.WithLogger(r.logger, "component", "server"))
}
