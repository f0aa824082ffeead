package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/Riddhi-crypto/Rooha/internal/shared"
	"github.com/Riddhi-crypto/Rooha/internal/ui"
)

// TUI launches the interactive emotion detection client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/rooha-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.logger = fileLogger

	repo, closeRepo, err := r.openRepository()
	if err != nil {
		fileLogger.Warn("local analysis log unavailable", "err", err)
	} else {
		defer closeRepo()
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Notice timing edits are picked up live. Connection, camera, audio,
	// and dwell settings need a restart.
	if r.configPath != "" {
		err := shared.WatchConfig(watchCtx, r.configPath, fileLogger, func(next *shared.Config) {
			*r.config = *next
		})
		if err != nil {
			fileLogger.Warn("config watch disabled", "err", err)
		}
	}

	model := ui.NewModel(ctx, ui.Deps{
		Config:      r.config,
		API:         r.api,
		Pipeline:    r.pipeline,
		Coordinator: r.coordinator,
		Player:      r.player,
		Repo:        repo,
		Logger:      fileLogger,
	})
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	r.player.Stop()
	r.coordinator.ReleaseCamera()
	return nil
}
