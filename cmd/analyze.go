package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Riddhi-crypto/Rooha/internal/capture"
	"github.com/Riddhi-crypto/Rooha/internal/models"
	"github.com/Riddhi-crypto/Rooha/internal/render"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
)

// AnalyzeText sends a piece of text for detection and prints the result.
func (r *Runner) AnalyzeText(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text to analyze", shared.ErrMissingArgument)
	}

	r.logger.Debug("submitting text for analysis", "chars", len(text))

	result, err := r.api.AnalyzeText(ctx, text)
	if err != nil {
		return err
	}

	return r.printResult(cmd, result, "text", render.Truncate(render.Sanitize(text), render.ExcerptLength))
}

// AnalyzeFace captures a photo (or reads one from disk) and sends it for
// detection.
func (r *Runner) AnalyzeFace(ctx context.Context, cmd *cli.Command) error {
	filePath := cmd.String("file")

	var dataURL string
	var err error
	if filePath != "" {
		dataURL, err = encodeImageFile(filePath)
	} else {
		dataURL, err = r.captureFromCamera(ctx)
	}
	if err != nil {
		return err
	}

	result, err := r.api.AnalyzeFace(ctx, dataURL)
	if err != nil {
		return err
	}

	return r.printResult(cmd, result, "face", "")
}

// captureFromCamera grabs a single mirrored frame. The camera is released
// before the frame leaves this function.
func (r *Runner) captureFromCamera(ctx context.Context) (string, error) {
	if err := r.coordinator.SelectMode(ctx, capture.ModeFace); err != nil {
		return "", err
	}
	defer r.coordinator.Reset()

	r.writePlain("📸 Capturing...\n")
	return r.coordinator.Capture()
}

func encodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	return capture.EncodeDataURL(img)
}

// printResult renders an analysis result and optionally records it in the
// local log.
func (r *Runner) printResult(cmd *cli.Command, result *models.AnalysisResult, inputType, excerpt string) error {
	if cmd.Bool("save") {
		if repo, closeRepo, err := r.openRepository(); err != nil {
			r.logger.Warn("skipping local log", "err", err)
		} else if repo != nil {
			defer closeRepo()
			if err := repo.Create(models.NewAnalysis(result, inputType, excerpt)); err != nil {
				r.logger.Warn("failed to record analysis locally", "err", err)
			}
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	vm := render.NewResultViewModel(result)
	_, err := r.output.Write(render.FormatResult(vm))
	return err
}
