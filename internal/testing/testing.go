// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/Riddhi-crypto/Rooha/internal/audio"
	"github.com/Riddhi-crypto/Rooha/internal/capture"
	"github.com/Riddhi-crypto/Rooha/internal/models"
)

// FakeStream is a test double for [capture.Stream] returning a fixed frame.
type FakeStream struct {
	mu       sync.Mutex
	live     bool
	FrameErr error
	Closed   int
}

func NewFakeStream() *FakeStream {
	return &FakeStream{live: true}
}

func (s *FakeStream) Frame() (image.Image, error) {
	if s.FrameErr != nil {
		return nil, s.FrameErr
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img, nil
}

func (s *FakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = false
	s.Closed++
	return nil
}

func (s *FakeStream) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// FakeCamera is a test double for [capture.Camera] handing out [FakeStream]s.
type FakeCamera struct {
	mu      sync.Mutex
	OpenErr error
	Streams []*FakeStream
}

func (c *FakeCamera) Open(ctx context.Context, constraints capture.Constraints) (capture.Stream, error) {
	if c.OpenErr != nil {
		return nil, c.OpenErr
	}
	stream := NewFakeStream()
	c.mu.Lock()
	c.Streams = append(c.Streams, stream)
	c.mu.Unlock()
	return stream, nil
}

// OpenCount returns how many streams the camera has handed out.
func (c *FakeCamera) OpenCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Streams)
}

// FakeSink is a test double for [audio.Sink] recording written PCM bytes.
type FakeSink struct {
	mu       sync.Mutex
	StartErr error
	Formats  []audio.Format
	Written  int
}

func (s *FakeSink) Start(f audio.Format) (io.WriteCloser, error) {
	if s.StartErr != nil {
		return nil, s.StartErr
	}
	s.mu.Lock()
	s.Formats = append(s.Formats, f)
	s.mu.Unlock()
	return &sinkWriter{sink: s}, nil
}

// Bytes returns the total PCM byte count written across all streams.
func (s *FakeSink) Bytes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Written
}

type sinkWriter struct {
	sink *FakeSink
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	w.sink.mu.Lock()
	w.sink.Written += len(p)
	w.sink.mu.Unlock()
	return len(p), nil
}

func (w *sinkWriter) Close() error { return nil }

// FakeAnalyzer is a test double for the analysis backend.
type FakeAnalyzer struct {
	Result *models.AnalysisResult
	Err    error

	mu         sync.Mutex
	TextCalls  []string
	ImageCalls []string
}

func (a *FakeAnalyzer) AnalyzeText(ctx context.Context, text string) (*models.AnalysisResult, error) {
	a.mu.Lock()
	a.TextCalls = append(a.TextCalls, text)
	a.mu.Unlock()
	return a.Result, a.Err
}

func (a *FakeAnalyzer) AnalyzeFace(ctx context.Context, imageDataURL string) (*models.AnalysisResult, error) {
	a.mu.Lock()
	a.ImageCalls = append(a.ImageCalls, imageDataURL)
	a.mu.Unlock()
	return a.Result, a.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
