package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// Constraints describe the preferred capture parameters, matching the
// front-facing 640x480 stream the web client asks for.
type Constraints struct {
	Width       int
	Height      int
	FacingFront bool
}

// DefaultConstraints returns the standard capture preference.
func DefaultConstraints() Constraints {
	return Constraints{Width: 640, Height: 480, FacingFront: true}
}

// Camera acquires live capture streams. Implementations may talk to real
// devices or be test doubles.
type Camera interface {
	// Open acquires a stream honoring the constraints where possible.
	// Acquisition failure (no device, permission denied) is non-fatal to the
	// caller and reported as an error.
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is one live capture handle.
type Stream interface {
	Frame() (image.Image, error) // Frame grabs the current frame
	Close() error                // Close releases the device; idempotent
	Live() bool                  // Live reports whether the stream is still open
}

// ExecCamera grabs frames by running an external command (ffmpeg, fswebcam,
// imagesnap...) that writes one encoded frame to stdout. "{width}" and
// "{height}" placeholders in the arguments are substituted from the
// constraints.
type ExecCamera struct {
	Command string
	Args    []string
}

// Open verifies the grabber exists and returns a stream bound to it.
func (c *ExecCamera) Open(ctx context.Context, constraints Constraints) (Stream, error) {
	if c.Command == "" {
		return nil, fmt.Errorf("no camera command configured")
	}
	if _, err := exec.LookPath(c.Command); err != nil {
		return nil, fmt.Errorf("camera command %q not found: %w", c.Command, err)
	}

	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		arg = strings.ReplaceAll(arg, "{width}", strconv.Itoa(constraints.Width))
		arg = strings.ReplaceAll(arg, "{height}", strconv.Itoa(constraints.Height))
		args[i] = arg
	}

	return &execStream{ctx: ctx, command: c.Command, args: args, live: true}, nil
}

// execStream runs the grab command once per frame request.
type execStream struct {
	ctx     context.Context
	command string
	args    []string

	mu   sync.Mutex
	live bool
}

func (s *execStream) Frame() (image.Image, error) {
	s.mu.Lock()
	live := s.live
	s.mu.Unlock()
	if !live {
		return nil, fmt.Errorf("stream is closed")
	}

	cmd := exec.CommandContext(s.ctx, s.command, s.args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("frame grab failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}

	return img, nil
}

func (s *execStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = false
	return nil
}

func (s *execStream) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}
