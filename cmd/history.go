package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Riddhi-crypto/Rooha/internal/render"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
)

// History prints the authenticated user's past sessions.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	entries, err := r.api.History(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	var vm render.HistoryViewModel
	vm.ApplyHistory(entries, time.Now())

	r.writePlainHeader("Your Journey")
	_, err = r.output.Write(render.FormatHistory(vm))
	return err
}

// Stats prints aggregate figures across the user's sessions.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	stats, err := r.api.Stats(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlain("Sessions:       %d\n", stats.TotalSessions)
	r.writePlain("Avg confidence: %d%%\n", stats.AvgConfidencePercent())
	r.writePlain("Most felt:      %s\n", stats.TopEmotion())
	return nil
}

// Feedback records a rating against a past session.
func (r *Runner) Feedback(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.StringArg("session")
	if sessionID == "" {
		return fmt.Errorf("%w: session id", shared.ErrMissingArgument)
	}
	if _, err := strconv.Atoi(sessionID); err != nil {
		return fmt.Errorf("%w: session id must be numeric", shared.ErrInvalidInput)
	}

	rating := cmd.Int("rating")
	if rating != 1 && rating != -1 {
		return fmt.Errorf("%w: rating must be 1 or -1", shared.ErrInvalidFlag)
	}

	if err := r.api.SendFeedback(ctx, sessionID, int(rating)); err != nil {
		return err
	}

	return r.writePlain("✓ Feedback recorded\n")
}
