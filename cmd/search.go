package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotdash/internal/controller"
	"github.com/desertthunder/spotdash/internal/formatter"
	"github.com/desertthunder/spotdash/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a search through the dashboard and prints or writes the results panel.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	panel, err := r.newController().PerformSearch(ctx, cmd.StringArg("query"), cmd.String("type"))
	if err != nil {
		return err
	}

	r.logger.Debug("search finished", "query", panel.Query, "state", panel.State, "results", len(panel.Items))

	if output := cmd.String("output"); output != "" {
		if err := formatter.WriteExport(panel, format, output); err != nil {
			return err
		}
		r.writePlain("✓ %d results written to %s\n", len(panel.Items), output)
	} else {
		data, err := formatter.Render(panel, format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if panel.State == controller.PanelError {
		return fmt.Errorf("%w: search %q", shared.ErrAPIRequest, panel.Query)
	}
	return nil
}
