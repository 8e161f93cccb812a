package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/desertthunder/spotdash/internal/models"
	"github.com/desertthunder/spotdash/internal/repositories"
	"github.com/desertthunder/spotdash/internal/server"
	"github.com/desertthunder/spotdash/internal/services"
	"github.com/desertthunder/spotdash/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// authTimeout bounds how long the login flow waits for the browser callback.
const authTimeout = 2 * time.Minute

// AuthLogin signs in with Spotify, stores a dashboard session and saves its id in the config.
//
// With --session an existing id is saved as-is.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	config := r.loadConfigAt(configPath)

	sessionID := cmd.String("session")
	if sessionID == "" {
		spotify, err := r.requireSpotify()
		if err != nil {
			return err
		}

		token, err := r.doOAuth(ctx, config, spotify)
		if err != nil {
			return err
		}

		if sessionID, err = r.storeSession(config, token); err != nil {
			return err
		}
	}

	config.Client.SessionID = sessionID
	if err := shared.SaveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Session saved to %s\n\n", configPath)
	r.writePlain("You can now use: spotdash player play\n")
	return nil
}

func (r *Runner) storeSession(config *shared.Config, token *oauth2.Token) (string, error) {
	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	session := models.NewSession(token)
	if err := repositories.NewSessionRepository(db).Create(session); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	r.logger.Info("session created", "id", session.ID())
	return session.ID(), nil
}

// AuthStatus checks the dashboard is reachable and reports whether a session is configured.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking dashboard health")

	health, err := r.api.Health(ctx).Unwrap()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"status":  health.Status,
			"session": r.config.Client.SessionID != "",
		}, true)
	}

	r.writePlain("✓ Dashboard is healthy\n")
	r.writePlain("Status: %s\n", health.Status)
	if r.config.Client.SessionID != "" {
		r.writePlain("Session: ✓ %s\n", r.config.Client.SessionID)
	} else {
		r.writePlain("Session: ✗ none (run spotdash auth login)\n")
	}
	return nil
}

// doOAuth runs the authorization code flow against a temporary callback server on the configured address.
func (r *Runner) doOAuth(ctx context.Context, config *shared.Config, oauthSrv services.OAuthService) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	callback := server.NewOAuthHandler(oauthSrv, state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(callback)

	// The callback address is the dashboard's own, so a running `spotdash serve` holds it.
	ln, err := net.Listen("tcp", config.Server.Addr())
	if err != nil {
		return nil, fmt.Errorf("%w: cannot listen on %s for the OAuth callback (is `spotdash serve` running? stop it, or sign in through the dashboard and pass --session): %v",
			shared.ErrServiceUnavailable, config.Server.Addr(), err)
	}

	httpServer := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server at %v", httpServer.Addr)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			cancel()
		}
	}()

	authURL := oauthSrv.GetAuthURL(state)
	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := r.open(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}
	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	token, err := callback.Wait(ctx)

	shutdownCtx, stop := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	select {
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	default:
	}
	if err != nil {
		return nil, fmt.Errorf("authorization failed: %w", err)
	}
	return token, nil
}
