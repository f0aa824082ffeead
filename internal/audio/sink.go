package audio

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// Format describes the PCM stream handed to a sink: signed 16-bit
// little-endian interleaved samples.
type Format struct {
	SampleRate int
	Channels   int
}

// Sink is a playback channel for raw PCM audio.
type Sink interface {
	// Start opens the channel for one stream. The returned writer receives
	// PCM data and is closed when playback stops.
	Start(f Format) (io.WriteCloser, error)
}

// ExecSink pipes PCM to an external player command (aplay, ffplay, sox...).
// A "{rate}" placeholder in the arguments is substituted with the stream's
// sample rate.
type ExecSink struct {
	Command string
	Args    []string
}

// Start launches the player process and returns its stdin.
func (s *ExecSink) Start(f Format) (io.WriteCloser, error) {
	if s.Command == "" {
		return nil, fmt.Errorf("no audio command configured")
	}

	args := make([]string, len(s.Args))
	for i, arg := range s.Args {
		args[i] = strings.ReplaceAll(arg, "{rate}", strconv.Itoa(f.SampleRate))
	}

	cmd := exec.Command(s.Command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open player stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start player: %w", err)
	}

	// Reap the process once the stream is closed.
	go cmd.Wait()

	return stdin, nil
}

// NopSink discards all audio. Used when playback is disabled in config.
type NopSink struct{}

type nopWriteCloser struct{}

func (nopWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopWriteCloser) Close() error                { return nil }

// Start returns a writer that discards everything.
func (NopSink) Start(Format) (io.WriteCloser, error) { return nopWriteCloser{}, nil }
