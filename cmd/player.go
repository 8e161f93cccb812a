package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotdash/internal/controller"
	"github.com/desertthunder/spotdash/internal/shared"
	"github.com/urfave/cli/v3"
)

// newController builds a controller whose alerts are printed to the runner's output.
func (r *Runner) newController() *controller.Controller {
	return controller.New(r.api,
		controller.WithLogger(r.logger),
		controller.WithAlerter(controller.AlertFunc(func(message string) {
			r.writePlain("✗ %s\n", message)
		})),
	)
}

// Player sends a playback control to the dashboard.
func (r *Runner) Player(ctx context.Context, cmd *cli.Command) error {
	action := cmd.StringArg("action")
	if action == "" {
		return fmt.Errorf("%w: action (play, pause, next or previous)", shared.ErrMissingArgument)
	}

	result, err := r.newController().DispatchPlayerAction(ctx, action)
	if err != nil {
		return err
	}
	if !result.OK() {
		// the alerter already printed the message
		return fmt.Errorf("%w: player %s", shared.ErrAPIRequest, action)
	}

	return r.writePlain("✓ %s\n", action)
}
