package ui

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Riddhi-crypto/Rooha/internal/audio"
	"github.com/Riddhi-crypto/Rooha/internal/capture"
	"github.com/Riddhi-crypto/Rooha/internal/detect"
	"github.com/Riddhi-crypto/Rooha/internal/models"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
	roohatest "github.com/Riddhi-crypto/Rooha/internal/testing"
)

func newTestModel(t *testing.T) (*Model, *roohatest.FakeCamera) {
	t.Helper()

	logger := shared.NewLogger(io.Discard)
	camera := &roohatest.FakeCamera{}
	analyzer := &roohatest.FakeAnalyzer{Result: happyResult()}

	deps := Deps{
		Pipeline:    detect.NewPipeline(analyzer, 0, 0, logger),
		Coordinator: capture.NewCoordinator(camera, capture.DefaultConstraints(), logger),
		Player:      audio.NewPlayer(&roohatest.FakeSink{}, nil, logger),
		Logger:      logger,
	}

	return NewModel(context.Background(), deps), camera
}

func happyResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		SessionID:  json.Number("42"),
		Emotion:    models.EmotionHappy,
		Mood:       "Joyful & Energetic",
		Confidence: 0.91,
		Tracks: []models.Track{
			{Name: "Sunrise", Artist: "Aiyra", PreviewURL: "http://cdn.example/p.mp3"},
			{Name: "Golden Hour", Artist: "Naomi", ExternalURL: "http://music.example/t/2"},
		},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNavigate(t *testing.T) {
	t.Run("unknown view is a no-op", func(t *testing.T) {
		m, _ := newTestModel(t)

		if cmd := m.navigate(ViewState(99)); cmd != nil {
			t.Error("unknown view returned a command")
		}
		if m.view != DetectView {
			t.Errorf("view changed to %v", m.view)
		}
	})

	t.Run("history refetches on entry", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.history.HasStats = true

		cmd := m.navigate(HistoryView)
		if cmd == nil {
			t.Fatal("expected a refresh command")
		}
		if m.view != HistoryView {
			t.Errorf("view = %v, want HistoryView", m.view)
		}
		if m.history.HasStats {
			t.Error("stale view model survived navigation")
		}
	})

	t.Run("returning to detect resets the phase", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.phase = PhaseResult
		m.moodAccent = "#FFD93D"
		m.view = HistoryView

		m.navigate(DetectView)
		if m.phase != PhaseModeSelect {
			t.Errorf("phase = %v, want PhaseModeSelect", m.phase)
		}
		if m.moodAccent != "" {
			t.Error("ambient accent not cleared")
		}
	})
}

func TestNavigateReleasesCamera(t *testing.T) {
	m, camera := newTestModel(t)

	if err := m.coordinator.SelectMode(m.ctx, capture.ModeFace); err != nil {
		t.Fatalf("SelectMode failed: %v", err)
	}
	m.phase = PhaseFace

	m.navigate(HistoryView)

	if m.coordinator.CameraActive() {
		t.Error("camera still active after leaving detect")
	}
	if camera.Streams[0].Closed != 1 {
		t.Errorf("stream closed %d times, want 1", camera.Streams[0].Closed)
	}
}

func TestCameraReady(t *testing.T) {
	t.Run("stale generation releases the stream", func(t *testing.T) {
		m, camera := newTestModel(t)

		if err := m.coordinator.SelectMode(m.ctx, capture.ModeFace); err != nil {
			t.Fatalf("SelectMode failed: %v", err)
		}
		m.phase = PhaseFace
		m.cameraPending = true
		m.gen = 3

		m.Update(cameraReadyMsg{gen: 2})

		if m.coordinator.CameraActive() {
			t.Error("stale acquisition kept the camera open")
		}
		if camera.Streams[0].Closed != 1 {
			t.Errorf("stream closed %d times, want 1", camera.Streams[0].Closed)
		}
		if !m.cameraPending {
			t.Error("pending flag cleared by a stale message")
		}
	})

	t.Run("failure surfaces a notice", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.phase = PhaseFace
		m.cameraPending = true

		_, cmd := m.Update(cameraReadyMsg{gen: 0, err: shared.ErrCameraUnavailable})

		if !m.cameraErr {
			t.Error("cameraErr not set")
		}
		if m.cameraPending {
			t.Error("pending flag not cleared")
		}
		if cmd == nil || m.toast == nil {
			t.Fatal("expected a toast")
		}
	})
}

func TestSubmitTextEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	m.phase = PhaseText
	m.textArea.SetValue("   ")

	_, cmd := m.submitText()

	if m.phase != PhaseText {
		t.Errorf("phase = %v, want PhaseText", m.phase)
	}
	if cmd == nil || m.toast == nil {
		t.Fatal("expected a toast")
	}
	if m.toast.text != "Please write something first" {
		t.Errorf("toast = %q", m.toast.text)
	}
}

func TestAnalysisDone(t *testing.T) {
	t.Run("stale generation is discarded", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.phase = PhaseLoading
		m.gen = 2

		m.Update(analysisDoneMsg{gen: 1, result: happyResult()})

		if m.phase != PhaseLoading {
			t.Errorf("phase = %v, want PhaseLoading", m.phase)
		}
		if m.result != nil {
			t.Error("stale result rendered")
		}
	})

	t.Run("failure returns to mode selection", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.phase = PhaseLoading

		_, cmd := m.Update(analysisDoneMsg{gen: 0, err: shared.ErrConnection})

		if m.phase != PhaseModeSelect {
			t.Errorf("phase = %v, want PhaseModeSelect", m.phase)
		}
		if cmd == nil || m.toast == nil {
			t.Fatal("expected a toast")
		}
		if m.toast.text != "Connection error. Please try again." {
			t.Errorf("toast = %q", m.toast.text)
		}
	})

	t.Run("success establishes the session", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.phase = PhaseLoading
		m.feedbackSent = true
		m.trackCursor = 1

		m.Update(analysisDoneMsg{gen: 0, result: happyResult()})

		if m.phase != PhaseResult {
			t.Errorf("phase = %v, want PhaseResult", m.phase)
		}
		if m.sessionID != "42" {
			t.Errorf("sessionID = %q, want 42", m.sessionID)
		}
		if m.feedbackSent || m.trackCursor != 0 {
			t.Error("result state not reset")
		}
		if m.moodAccent != models.EmotionHappy.Color() {
			t.Errorf("moodAccent = %q", m.moodAccent)
		}
	})
}

func TestSendFeedback(t *testing.T) {
	t.Run("no session is a no-op", func(t *testing.T) {
		m, _ := newTestModel(t)

		if cmd := m.sendFeedback(1); cmd != nil {
			t.Error("feedback without a session produced a command")
		}
	})

	t.Run("one rating per session", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.sessionID = "42"
		m.feedbackSent = true

		if cmd := m.sendFeedback(-1); cmd != nil {
			t.Error("second rating produced a command")
		}
	})
}

func TestToastClearSeq(t *testing.T) {
	m, _ := newTestModel(t)

	m.showToast("first", toastInfo)
	m.showToast("second", toastInfo)

	m.Update(toastClearMsg{seq: 1})
	if m.toast == nil {
		t.Fatal("newer toast cleared by an older timer")
	}

	m.Update(toastClearMsg{seq: 2})
	if m.toast != nil {
		t.Error("toast not cleared")
	}
}

func TestAuthOverlay(t *testing.T) {
	t.Run("account key opens login", func(t *testing.T) {
		m, _ := newTestModel(t)

		m.Update(keyRune('a'))

		if !m.authOpen {
			t.Fatal("overlay not opened")
		}
		if m.authTab != 0 || len(m.authInputs) != 2 {
			t.Errorf("tab = %d, inputs = %d, want login with 2", m.authTab, len(m.authInputs))
		}
	})

	t.Run("tab switches to register", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.Update(keyRune('a'))

		m.Update(tea.KeyMsg{Type: tea.KeyTab})

		if m.authTab != 1 || len(m.authInputs) != 3 {
			t.Errorf("tab = %d, inputs = %d, want register with 3", m.authTab, len(m.authInputs))
		}
	})

	t.Run("escape closes the overlay", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.Update(keyRune('a'))

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})

		if m.authOpen {
			t.Error("overlay still open")
		}
	})

	t.Run("blank fields never reach the network", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.Update(keyRune('a'))
		m.authFocus = len(m.authInputs) - 1

		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		if !m.authOpen {
			t.Error("overlay closed on invalid submit")
		}
		if m.toast == nil || m.toast.text != "Please fill in all fields" {
			t.Fatalf("toast = %v", m.toast)
		}
	})

	t.Run("logout clears the identity", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.auth = models.AuthStatus{LoggedIn: true, Username: "tester"}

		m.Update(authDoneMsg{action: "logout"})

		if m.auth.LoggedIn || m.auth.Username != "" {
			t.Errorf("auth = %+v, want logged out", m.auth)
		}
	})
}

func TestWindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if m.width != 100 || m.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", m.width, m.height)
	}
}
