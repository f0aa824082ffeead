// Package capture owns the input acquisition state machine for the detect
// view: which capture mode is active, and the single live camera stream slot.
//
// Invariants enforced here:
//   - exactly one capture mode is active at a time
//   - at most one live camera stream exists; acquiring releases any held one
//   - every path out of face capture releases the camera, and release is
//     idempotent
package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/Riddhi-crypto/Rooha/internal/shared"
	"github.com/charmbracelet/log"
)

// Mode is the active capture mode within the detect view.
type Mode int

const (
	ModeNone Mode = iota // mode selection, nothing captured
	ModeText             // free text entry
	ModeFace             // camera capture
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeFace:
		return "face"
	default:
		return "none"
	}
}

// Coordinator owns the capture mode and the camera stream slot.
//
// Methods are safe for concurrent use: acquisition runs in a background
// command while the UI loop may release or reset at any time, so the mode
// and stream slot are guarded by a mutex. A mode change racing an
// acquisition serializes; the slot never holds more than one live stream.
type Coordinator struct {
	camera      Camera
	constraints Constraints
	logger      *log.Logger

	mu     sync.Mutex
	mode   Mode
	stream Stream
}

// NewCoordinator creates a Coordinator using the given camera backend.
func NewCoordinator(camera Camera, constraints Constraints, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Coordinator{
		camera:      camera,
		constraints: constraints,
		logger:      logger,
		mode:        ModeNone,
	}
}

// Mode returns the currently active capture mode.
func (c *Coordinator) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// CameraActive reports whether a live stream is currently held.
func (c *Coordinator) CameraActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream != nil && c.stream.Live()
}

// SelectMode activates a capture mode from mode selection. Selecting
// [ModeFace] acquires the camera; acquisition failure leaves the mode at face
// with capture disabled so the user can retry by re-selecting, and returns a
// wrapped [shared.ErrCameraUnavailable].
func (c *Coordinator) SelectMode(ctx context.Context, mode Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = mode

	if mode != ModeFace {
		c.releaseLocked()
		return nil
	}

	if c.camera == nil {
		return fmt.Errorf("%w: no camera backend", shared.ErrCameraUnavailable)
	}

	// Holding a stream while acquiring would break the single-stream
	// invariant, so drop any leftover first. The lock is held across the
	// open, so a concurrent release or re-acquisition waits its turn.
	c.releaseLocked()

	stream, err := c.camera.Open(ctx, c.constraints)
	if err != nil {
		c.logger.Warn("camera acquisition failed", "err", err)
		return fmt.Errorf("%w: %v", shared.ErrCameraUnavailable, err)
	}

	c.stream = stream
	c.logger.Debug("camera acquired", "width", c.constraints.Width, "height", c.constraints.Height)
	return nil
}

// Reset releases the camera if held and returns to mode selection. Called on
// detect view entry and exit and after a failed submission. Idempotent.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
	c.mode = ModeNone
}

// ReleaseCamera closes the held stream and clears the slot. Releasing when
// nothing is held is a no-op.
func (c *Coordinator) ReleaseCamera() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
}

func (c *Coordinator) releaseLocked() {
	if c.stream == nil {
		return
	}
	if err := c.stream.Close(); err != nil {
		c.logger.Warn("camera release failed", "err", err)
	}
	c.stream = nil
}

// Capture grabs the current frame synchronously, mirrors it to match the
// preview, encodes it as a JPEG data URL, and releases the camera before
// returning. Release always precedes submission.
func (c *Coordinator) Capture() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream == nil || !c.stream.Live() {
		return "", fmt.Errorf("%w: no live camera stream", shared.ErrCaptureDisabled)
	}

	frame, err := c.stream.Frame()
	c.releaseLocked()
	if err != nil {
		return "", fmt.Errorf("failed to capture frame: %w", err)
	}

	dataURL, err := EncodeDataURL(Mirror(frame))
	if err != nil {
		return "", err
	}

	return dataURL, nil
}
