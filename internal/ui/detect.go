package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Riddhi-crypto/Rooha/internal/capture"
	"github.com/Riddhi-crypto/Rooha/internal/models"
	"github.com/Riddhi-crypto/Rooha/internal/render"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
)

func (m *Model) handleDetectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case PhaseModeSelect:
		return m.handleModeSelectKeys(msg)
	case PhaseText:
		return m.handleTextEntryKeys(msg)
	case PhaseFace:
		return m.handleFaceKeys(msg)
	case PhaseLoading:
		return m.handleLoadingKeys(msg)
	case PhaseResult:
		return m.handleResultKeys(msg)
	}
	return m, nil
}

func (m *Model) handleModeSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.history):
		return m, m.navigate(HistoryView)
	case key.Matches(msg, m.keys.detect):
		return m, m.navigate(DetectView)
	case key.Matches(msg, m.keys.account):
		return m.handleAccountKey()
	case key.Matches(msg, m.keys.text):
		m.coordinator.SelectMode(m.ctx, capture.ModeText)
		m.phase = PhaseText
		m.textArea.Reset()
		return m, m.textArea.Focus()
	case key.Matches(msg, m.keys.face):
		return m.enterFaceMode()
	}
	return m, nil
}

// enterFaceMode switches to face capture and starts async camera
// acquisition.
func (m *Model) enterFaceMode() (tea.Model, tea.Cmd) {
	m.phase = PhaseFace
	m.cameraPending = true
	m.cameraErr = false
	gen := m.gen

	acquire := func() tea.Msg {
		return cameraReadyMsg{gen: gen, err: m.coordinator.SelectMode(m.ctx, capture.ModeFace)}
	}

	return m, tea.Batch(acquire, m.spin.Tick)
}

func (m *Model) handleCameraReady(msg cameraReadyMsg) (tea.Model, tea.Cmd) {
	// The user navigated or reset while the camera was being acquired: the
	// stream must not outlive the view that asked for it.
	if msg.gen != m.gen || m.view != DetectView || m.phase != PhaseFace {
		m.coordinator.ReleaseCamera()
		return m, nil
	}

	m.cameraPending = false
	if msg.err != nil {
		m.cameraErr = true
		return m, m.showToast("Could not access camera. Please check permissions.", toastError)
	}
	return m, nil
}

func (m *Model) handleTextEntryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.resetDetection()
		return m, nil
	case key.Matches(msg, m.keys.quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.submit):
		return m.submitText()
	}

	var cmd tea.Cmd
	m.textArea, cmd = m.textArea.Update(msg)
	return m, cmd
}

func (m *Model) submitText() (tea.Model, tea.Cmd) {
	text := m.textArea.Value()

	// Local validation: empty input never reaches the network.
	if strings.TrimSpace(text) == "" {
		return m, m.showToast("Please write something first", toastError)
	}

	m.gen++
	gen := m.gen
	m.phase = PhaseLoading

	submit := func() tea.Msg {
		result, err := m.pipeline.SubmitText(m.ctx, text)
		return analysisDoneMsg{gen: gen, result: result, err: err}
	}

	return m, tea.Batch(submit, m.spin.Tick)
}

func (m *Model) handleFaceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.resetDetection()
		return m, nil
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.history):
		return m, m.navigate(HistoryView)
	case key.Matches(msg, m.keys.face):
		// Re-selecting the mode retries acquisition after a denial.
		if m.cameraErr {
			return m.enterFaceMode()
		}
		return m, nil
	case key.Matches(msg, m.keys.capture):
		return m.capturePhoto()
	}
	return m, nil
}

// capturePhoto grabs the mirrored frame, which also releases the camera, and
// submits it for analysis.
func (m *Model) capturePhoto() (tea.Model, tea.Cmd) {
	if m.cameraPending || m.cameraErr || !m.coordinator.CameraActive() {
		return m, m.showToast("Camera not available", toastError)
	}

	dataURL, err := m.coordinator.Capture()
	if err != nil {
		m.cameraErr = true
		return m, m.showToast(errorNotice(err, "Capture failed"), toastError)
	}

	m.gen++
	gen := m.gen
	m.phase = PhaseLoading

	submit := func() tea.Msg {
		result, err := m.pipeline.SubmitImage(m.ctx, dataURL)
		return analysisDoneMsg{gen: gen, result: result, err: err}
	}

	return m, tea.Batch(submit, m.spin.Tick)
}

func (m *Model) handleLoadingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Navigation stays available while loading; the generation guard
	// discards the response if the user moves on.
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.history):
		return m, m.navigate(HistoryView)
	}
	return m, nil
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	// Stale responses (reset, navigation, or a newer submission) are
	// discarded rather than rendered.
	if msg.gen != m.gen || m.view != DetectView || m.phase != PhaseLoading {
		return m, nil
	}

	if msg.err != nil {
		m.phase = PhaseModeSelect
		m.coordinator.Reset()
		if errors.Is(msg.err, shared.ErrEmptyInput) {
			return m, m.showToast("Please write something first", toastError)
		}
		return m, m.showToast(errorNotice(msg.err, "Analysis failed"), toastError)
	}

	return m, m.applyResult(msg.result)
}

// applyResult projects a fresh analysis into the result view and establishes
// the new session.
func (m *Model) applyResult(result *models.AnalysisResult) tea.Cmd {
	vm := render.NewResultViewModel(result)
	m.result = &vm
	m.sessionID = result.Session()
	m.feedbackSent = false
	m.trackCursor = 0
	m.moodAccent = vm.AccentColor
	m.phase = PhaseResult

	inputType := "text"
	excerpt := render.Truncate(render.Sanitize(m.textArea.Value()), render.ExcerptLength)
	if m.coordinator.Mode() == capture.ModeFace {
		inputType = "face"
		excerpt = ""
	}

	return m.recordAnalysis(result, inputType, excerpt)
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.history):
		return m, m.navigate(HistoryView)
	case key.Matches(msg, m.keys.detect), key.Matches(msg, m.keys.restart):
		return m, m.navigate(DetectView)
	case key.Matches(msg, m.keys.account):
		return m.handleAccountKey()
	case key.Matches(msg, m.keys.up):
		if m.trackCursor > 0 {
			m.trackCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.down):
		if m.result != nil && m.trackCursor < len(m.result.Tracks)-1 {
			m.trackCursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m.activateTrack()
	case key.Matches(msg, m.keys.good):
		return m, m.sendFeedback(1)
	case key.Matches(msg, m.keys.bad):
		return m, m.sendFeedback(-1)
	}
	return m, nil
}

// activateTrack toggles the selected track's preview, or opens its external
// link when no preview exists.
func (m *Model) activateTrack() (tea.Model, tea.Cmd) {
	if m.result == nil || m.trackCursor >= len(m.result.Tracks) {
		return m, nil
	}

	track := m.result.Tracks[m.trackCursor]
	if track.HasPreview {
		m.player.Toggle(m.ctx, track.PreviewURL, m.trackCursor)
		return m, nil
	}

	if track.ExternalURL != "" {
		if err := shared.OpenExternal(track.ExternalURL); err != nil {
			m.logger.Warn("failed to open external link", "err", err)
			return m, m.showToast(track.ExternalURL, toastInfo)
		}
	}
	return m, nil
}

// Rendering

func (m *Model) renderDetect() string {
	switch m.phase {
	case PhaseModeSelect:
		return m.renderModeSelect()
	case PhaseText:
		return m.renderTextEntry()
	case PhaseFace:
		return m.renderFaceCapture()
	case PhaseLoading:
		return m.renderLoading()
	case PhaseResult:
		return m.renderResult()
	}
	return ""
}

func (m *Model) renderModeSelect() string {
	title := styles.title.Render("How do you want to share your mood?")
	options := fmt.Sprintf("  %s  describe it in words\n  %s  snap a photo",
		styles.ok.Render("[t]"), styles.ok.Render("[f]"))
	return title + "\n" + options
}

func (m *Model) renderTextEntry() string {
	title := styles.title.Render("Tell me how you feel")
	count := styles.help.Render(fmt.Sprintf("%d/500", len([]rune(m.textArea.Value()))))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.back})
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, m.textArea.View(), count, helpView)
}

func (m *Model) renderFaceCapture() string {
	title := styles.title.Render("Face capture")

	var status string
	switch {
	case m.cameraPending:
		status = fmt.Sprintf("%s starting camera...", m.spin.View())
	case m.cameraErr:
		status = styles.err.Render("⚠ Camera not available") + "\n" +
			styles.help.Render("press f to retry, esc to go back")
	case m.coordinator.CameraActive():
		status = styles.ok.Render("● Camera active — smile!") + "\n" +
			styles.help.Render("press enter to capture")
	default:
		status = styles.warn.Render("camera idle")
	}

	return title + "\n" + status
}

// loadingGlyphs cycles through the known emotions while an analysis is in
// flight.
var loadingGlyphs = []string{"😊", "😢", "😤", "😰", "😲", "🤢", "😐"}

func (m *Model) renderLoading() string {
	glyph := loadingGlyphs[m.loadFrame%len(loadingGlyphs)]
	return fmt.Sprintf("%s %s Reading your mood...", m.spin.View(), glyph)
}

func (m *Model) renderResult() string {
	if m.result == nil {
		return ""
	}
	vm := *m.result

	header := fmt.Sprintf("%s  %s\n%s", vm.Glyph, styles.title.Render(vm.Emotion), vm.Mood)
	bar := fmt.Sprintf("%s %d%%", m.confidence.ViewAs(float64(vm.ConfidencePercent)/100), vm.ConfidencePercent)
	card := accentCard(vm.AccentColor, header+"\n"+bar)

	var tracks strings.Builder
	tracks.WriteString(styles.title.Render(fmt.Sprintf("%d tracks", len(vm.Tracks))))
	tracks.WriteString("\n")
	for i, t := range vm.Tracks {
		cursor := "  "
		if i == m.trackCursor {
			cursor = styles.ok.Render("> ")
		}

		marker := "↗"
		if t.HasPreview {
			marker = "▶"
			if m.player != nil && m.player.PlayingIndex() == i {
				marker = "♪"
			}
		}

		tracks.WriteString(fmt.Sprintf("%s%s %s — %s\n", cursor, marker, t.Name, styles.muted.Render(t.Artist)))
	}

	feedback := m.help.ShortHelpView([]key.Binding{m.keys.good, m.keys.bad, m.keys.restart})
	if m.feedbackSent {
		feedback = styles.ok.Render("Thanks for your feedback! 🎵")
	}

	return card + "\n\n" + tracks.String() + "\n" + feedback
}
