package audio

import (
	"context"
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// hangingPreviewServer accepts the request and then stalls so playback stays
// "active" for the duration of the test.
func hangingPreviewServer(t *testing.T) *httptest.Server {
	t.Helper()
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-done
	}))
	t.Cleanup(func() {
		close(done)
		srv.Close()
	})
	return srv
}

func TestToggle(t *testing.T) {
	t.Run("same index pauses", func(t *testing.T) {
		srv := hangingPreviewServer(t)
		p := NewPlayer(&FakeStartSink{}, srv.Client(), nil)

		p.Toggle(context.Background(), srv.URL, 1)
		if got := p.PlayingIndex(); got != 1 {
			t.Fatalf("PlayingIndex() = %d, want 1", got)
		}

		p.Toggle(context.Background(), srv.URL, 1)
		if got := p.PlayingIndex(); got != NoTrack {
			t.Errorf("PlayingIndex() after pause = %d, want NoTrack", got)
		}
	})

	t.Run("different index switches", func(t *testing.T) {
		srv := hangingPreviewServer(t)
		p := NewPlayer(&FakeStartSink{}, srv.Client(), nil)

		p.Toggle(context.Background(), srv.URL, 0)
		p.Toggle(context.Background(), srv.URL, 2)

		if got := p.PlayingIndex(); got != 2 {
			t.Errorf("PlayingIndex() = %d, want 2", got)
		}
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		srv := hangingPreviewServer(t)
		p := NewPlayer(&FakeStartSink{}, srv.Client(), nil)

		p.Toggle(context.Background(), srv.URL, 0)
		p.Stop()
		p.Stop()

		if got := p.PlayingIndex(); got != NoTrack {
			t.Errorf("PlayingIndex() after stop = %d, want NoTrack", got)
		}
	})
}

// FakeStartSink discards PCM.
type FakeStartSink struct{}

func (FakeStartSink) Start(Format) (io.WriteCloser, error) {
	return nopWriteCloser{}, nil
}

func TestScaleSamples(t *testing.T) {
	tc := []struct {
		name   string
		sample int16
		volume float64
		want   int16
	}{
		{name: "positive halved", sample: 10000, volume: 0.5, want: 5000},
		{name: "negative halved", sample: -8000, volume: 0.5, want: -4000},
		{name: "zero stays zero", sample: 0, volume: 0.5, want: 0},
		{name: "full volume unchanged", sample: 1234, volume: 1.0, want: 1234},
		{name: "muted", sample: 30000, volume: 0, want: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			pcm := make([]byte, 2)
			binary.LittleEndian.PutUint16(pcm, uint16(tt.sample))

			scaleSamples(pcm, tt.volume)

			got := int16(binary.LittleEndian.Uint16(pcm))
			if got != tt.want {
				t.Errorf("scaled sample = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScaleSamplesOddTail(t *testing.T) {
	// A trailing odd byte is left untouched rather than read out of bounds.
	pcm := []byte{0x10, 0x27, 0x7F}
	scaleSamples(pcm, 0.5)
	if pcm[2] != 0x7F {
		t.Errorf("trailing byte modified: %#x", pcm[2])
	}
}
