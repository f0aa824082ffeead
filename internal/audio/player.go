// Package audio implements the single shared preview playback channel.
//
// At most one track is audible at any time. Tracks are identified by their
// position in the currently rendered grid, matching the web client; toggling
// the playing index stops it, toggling a different index switches to it.
// Playback-start failures are deliberately swallowed (the browser analog is
// an autoplay-policy rejection) and only logged.
package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/Riddhi-crypto/Rooha/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/go-mp3"
)

// PreviewVolume matches the fixed 0.5 volume of the web client, applied by
// scaling decoded samples before they reach the sink.
const PreviewVolume = 0.5

// NoTrack is the playing index when nothing is audible.
const NoTrack = -1

// Player owns the shared playback channel.
type Player struct {
	sink       Sink
	httpClient *http.Client
	logger     *log.Logger

	mu      sync.Mutex
	playing int
	gen     int
	cancel  context.CancelFunc
}

// NewPlayer creates a Player streaming to the given sink.
func NewPlayer(sink Sink, httpClient *http.Client, logger *log.Logger) *Player {
	if sink == nil {
		sink = NopSink{}
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Player{
		sink:       sink,
		httpClient: httpClient,
		logger:     logger,
		playing:    NoTrack,
	}
}

// PlayingIndex returns the grid index currently audible, or [NoTrack].
func (p *Player) PlayingIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Toggle starts or stops preview playback for the track at index.
//
// Toggling the playing index pauses it and clears the playing state. Any
// other index silently stops the current track and starts the new one.
func (p *Player) Toggle(ctx context.Context, url string, index int) {
	p.mu.Lock()

	if p.playing == index {
		p.stopLocked()
		p.mu.Unlock()
		return
	}

	p.stopLocked()

	playCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.playing = index
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	go func() {
		if err := p.stream(playCtx, url); err != nil {
			p.logger.Debug("preview playback ended", "index", index, "err", err)
		}
		p.finish(gen)
	}()
}

// Stop tears down any active playback. Idempotent; called on result reset and
// program exit.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.playing = NoTrack
}

// finish clears the playing slot when a stream ends naturally, unless a newer
// toggle has already claimed it.
func (p *Player) finish(gen int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen == gen {
		p.playing = NoTrack
		p.cancel = nil
	}
}

// stream fetches the preview, decodes it, scales the samples to the preview
// volume, and writes PCM to the sink until the track ends or ctx is
// cancelled.
func (p *Player) stream(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create preview request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch preview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("preview fetch returned status %d", resp.StatusCode)
	}

	decoder, err := mp3.NewDecoder(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to decode preview: %w", err)
	}

	// go-mp3 always emits 16-bit stereo.
	out, err := p.sink.Start(Format{SampleRate: decoder.SampleRate(), Channels: 2})
	if err != nil {
		return fmt.Errorf("failed to open sink: %w", err)
	}
	defer out.Close()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := decoder.Read(buf)
		if n > 0 {
			scaleSamples(buf[:n], PreviewVolume)
			if _, werr := out.Write(buf[:n]); werr != nil {
				return fmt.Errorf("sink write failed: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("preview decode failed: %w", err)
		}
	}
}

// scaleSamples multiplies signed 16-bit little-endian samples in place.
func scaleSamples(pcm []byte, volume float64) {
	for i := 0; i+1 < len(pcm); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(pcm[i:]))
		scaled := int16(float64(sample) * volume)
		binary.LittleEndian.PutUint16(pcm[i:], uint16(scaled))
	}
}
