// Package detect implements the analysis request pipeline: local validation,
// single-flight submission, and the minimum visible loading duration.
//
// The minimum dwell is a deliberate UX smoothing device carried over from the
// web client, not a timeout: a submission never resolves earlier than the
// configured dwell after request start, even when the backend answers
// instantly, and never cuts a slow response short.
package detect

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Riddhi-crypto/Rooha/internal/models"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
	"github.com/charmbracelet/log"
)

// Analyzer is the slice of the backend client the pipeline needs.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*models.AnalysisResult, error)
	AnalyzeFace(ctx context.Context, imageDataURL string) (*models.AnalysisResult, error)
}

// Pipeline submits captured input to the backend, one submission at a time.
type Pipeline struct {
	api        Analyzer
	textDwell  time.Duration
	imageDwell time.Duration
	logger     *log.Logger
	busy       atomic.Bool
}

// NewPipeline creates a pipeline with the given dwell durations. Zero dwell
// values are honored as-is; the TUI passes the configured 1.5s/2s defaults.
func NewPipeline(api Analyzer, textDwell, imageDwell time.Duration, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Pipeline{
		api:        api,
		textDwell:  textDwell,
		imageDwell: imageDwell,
		logger:     logger,
	}
}

// Busy reports whether a submission is currently in flight.
func (p *Pipeline) Busy() bool { return p.busy.Load() }

// SubmitText submits free text for analysis.
//
// Empty or whitespace-only text is rejected locally with
// [shared.ErrEmptyInput] and never reaches the network. A call while another
// submission is pending returns [shared.ErrBusy].
func (p *Pipeline) SubmitText(ctx context.Context, text string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, shared.ErrEmptyInput
	}
	return p.submit(ctx, p.textDwell, func(ctx context.Context) (*models.AnalysisResult, error) {
		return p.api.AnalyzeText(ctx, text)
	})
}

// SubmitImage submits a captured snapshot, as a data URL, for analysis.
func (p *Pipeline) SubmitImage(ctx context.Context, imageDataURL string) (*models.AnalysisResult, error) {
	if imageDataURL == "" {
		return nil, shared.ErrEmptyInput
	}
	return p.submit(ctx, p.imageDwell, func(ctx context.Context) (*models.AnalysisResult, error) {
		return p.api.AnalyzeFace(ctx, imageDataURL)
	})
}

func (p *Pipeline) submit(ctx context.Context, dwell time.Duration, do func(context.Context) (*models.AnalysisResult, error)) (*models.AnalysisResult, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return nil, shared.ErrBusy
	}
	defer p.busy.Store(false)

	started := time.Now()
	result, err := do(ctx)

	// The dwell holds on failure too: the loading view stays up for the full
	// minimum before the error routes the user back to mode selection.
	if herr := holdDwell(ctx, started, dwell); herr != nil {
		return nil, herr
	}

	if err != nil {
		p.logger.Debug("submission failed", "elapsed", time.Since(started), "err", err)
		return nil, err
	}

	p.logger.Debug("submission complete", "elapsed", time.Since(started), "emotion", result.Emotion)
	return result, nil
}

// holdDwell blocks until at least dwell has elapsed since started, or ctx is
// cancelled.
func holdDwell(ctx context.Context, started time.Time, dwell time.Duration) error {
	remaining := dwell - time.Since(started)
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
