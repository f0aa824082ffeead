package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Riddhi-crypto/Rooha/internal/models"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
)

// SessionsList prints entries from the local analysis log.
func (r *Runner) SessionsList(ctx context.Context, cmd *cli.Command) error {
	repo, closeRepo, err := r.openRepository()
	if err != nil {
		return err
	}
	if repo == nil {
		return fmt.Errorf("%w: database.path is not set", shared.ErrMissingConfig)
	}
	defer closeRepo()

	criteria := map[string]any{}
	if emotion := cmd.String("emotion"); emotion != "" {
		criteria["emotion"] = emotion
	}
	if inputType := cmd.String("type"); inputType != "" {
		criteria["input_type"] = inputType
	}
	if limit := cmd.Int("limit"); limit > 0 {
		criteria["limit"] = int(limit)
	}

	analyses, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(sessionRows(analyses), true)
	}

	if len(analyses) == 0 {
		return r.writePlain("No recorded analyses.\n")
	}

	for _, a := range analyses {
		r.writePlain("%s  %s %s (%d%%) via %s  %s\n",
			a.ID(), a.Emotion().Glyph(), a.Emotion(), int(a.Confidence()*100), a.InputType(),
			a.CreatedAt().Format("2006-01-02 15:04"))
	}
	return nil
}

// SessionsShow prints a single recorded analysis in detail.
func (r *Runner) SessionsShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: analysis id", shared.ErrMissingArgument)
	}

	repo, closeRepo, err := r.openRepository()
	if err != nil {
		return err
	}
	if repo == nil {
		return fmt.Errorf("%w: database.path is not set", shared.ErrMissingConfig)
	}
	defer closeRepo()

	a, err := repo.Get(id)
	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("%s %s", a.Emotion().Glyph(), a.Emotion()))
	r.writePlain("Mood:       %s\n", a.Mood())
	r.writePlain("Confidence: %d%%\n", int(a.Confidence()*100))
	r.writePlain("Input:      %s\n", a.InputType())
	if a.InputExcerpt() != "" {
		r.writePlain("Excerpt:    %q\n", a.InputExcerpt())
	}
	r.writePlain("Tracks:     %d\n", a.TrackCount())
	r.writePlain("Recorded:   %s\n", a.CreatedAt().Format("2006-01-02 15:04:05"))
	return nil
}

// SessionsDelete removes a recorded analysis.
func (r *Runner) SessionsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: analysis id", shared.ErrMissingArgument)
	}

	repo, closeRepo, err := r.openRepository()
	if err != nil {
		return err
	}
	if repo == nil {
		return fmt.Errorf("%w: database.path is not set", shared.ErrMissingConfig)
	}
	defer closeRepo()

	if err := repo.Delete(id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted %s\n", id)
}

// sessionRow is the JSON projection of a logged analysis.
type sessionRow struct {
	ID         string  `json:"id"`
	Emotion    string  `json:"emotion"`
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"`
	InputType  string  `json:"input_type"`
	Excerpt    string  `json:"excerpt,omitempty"`
	TrackCount int     `json:"track_count"`
	CreatedAt  string  `json:"created_at"`
}

func sessionRows(analyses []*models.Analysis) []sessionRow {
	rows := make([]sessionRow, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, sessionRow{
			ID:         a.ID(),
			Emotion:    string(a.Emotion()),
			Mood:       a.Mood(),
			Confidence: a.Confidence(),
			InputType:  a.InputType(),
			Excerpt:    a.InputExcerpt(),
			TrackCount: a.TrackCount(),
			CreatedAt:  a.CreatedAt().Format("2006-01-02 15:04:05"),
		})
	}
	return rows
}
