package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Riddhi-crypto/Rooha/internal/api"
	"github.com/Riddhi-crypto/Rooha/internal/audio"
	"github.com/Riddhi-crypto/Rooha/internal/capture"
	"github.com/Riddhi-crypto/Rooha/internal/detect"
	"github.com/Riddhi-crypto/Rooha/internal/models"
	"github.com/Riddhi-crypto/Rooha/internal/render"
	"github.com/Riddhi-crypto/Rooha/internal/repositories"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	DetectView ViewState = iota
	HistoryView
)

// DetectPhase is the sub-state of the detect view.
type DetectPhase int

const (
	PhaseModeSelect DetectPhase = iota
	PhaseText
	PhaseFace
	PhaseLoading
	PhaseResult
)

// toastKind classifies transient notices.
type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
	toastInfo
)

type toast struct {
	text string
	kind toastKind
}

// Messages flowing back from async work.

type authStatusMsg struct {
	status *models.AuthStatus
	err    error
}

type authDoneMsg struct {
	action string // "login", "register", "logout"
	err    error
}

type cameraReadyMsg struct {
	gen int
	err error
}

type analysisDoneMsg struct {
	gen    int
	result *models.AnalysisResult
	err    error
}

type statsLoadedMsg struct {
	stats *models.Stats
	err   error
}

type historyLoadedMsg struct {
	entries []models.HistoryEntry
	err     error
}

type feedbackSentMsg struct {
	err error
}

type logSavedMsg struct {
	err error
}

type toastClearMsg struct {
	seq int
}

// Deps holds the collaborators the TUI model needs.
type Deps struct {
	Config      *shared.Config
	API         *api.Client
	Pipeline    *detect.Pipeline
	Coordinator *capture.Coordinator
	Player      *audio.Player
	Repo        *repositories.AnalysisRepository // optional local log
	Logger      *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	cfg         *shared.Config
	api         *api.Client
	pipeline    *detect.Pipeline
	coordinator *capture.Coordinator
	player      *audio.Player
	repo        *repositories.AnalysisRepository
	logger      *log.Logger

	view   ViewState
	width  int
	height int
	keys   keyMap
	help   help.Model

	// auth
	auth       models.AuthStatus
	authOpen   bool
	authTab    int // 0 login, 1 register
	authInputs []textinput.Model
	authFocus  int

	// detect
	phase         DetectPhase
	textArea      textarea.Model
	spin          spinner.Model
	confidence    progress.Model
	gen           int
	loadFrame     int
	sessionID     string
	result        *render.ResultViewModel
	trackCursor   int
	feedbackSent  bool
	cameraPending bool
	cameraErr     bool
	moodAccent    string

	// history
	history render.HistoryViewModel

	// toast
	toast    *toast
	toastSeq int
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Config == nil {
		deps.Config = shared.DefaultConfig()
	}
	if deps.Logger == nil {
		deps.Logger = shared.NewLogger(nil)
	}

	ta := textarea.New()
	ta.Placeholder = "How are you feeling today?"
	ta.CharLimit = 500
	ta.SetHeight(5)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:         ctx,
		cfg:         deps.Config,
		api:         deps.API,
		pipeline:    deps.Pipeline,
		coordinator: deps.Coordinator,
		player:      deps.Player,
		repo:        deps.Repo,
		logger:      deps.Logger,
		view:        DetectView,
		keys:        newKeyMap(),
		help:        help.New(),
		phase:       PhaseModeSelect,
		textArea:    ta,
		spin:        sp,
		confidence:  progress.New(progress.WithDefaultGradient()),
	}
}

// Init checks auth status once at startup, matching the web client.
func (m *Model) Init() tea.Cmd {
	return m.checkAuth()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textArea.SetWidth(min(msg.Width-4, 72))
		m.confidence.Width = min(msg.Width-20, 40)
		return m, nil

	case tea.KeyMsg:
		if m.authOpen {
			return m.handleAuthKeys(msg)
		}
		switch m.view {
		case DetectView:
			return m.handleDetectKeys(msg)
		case HistoryView:
			return m.handleHistoryKeys(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if m.phase == PhaseLoading || m.cameraPending {
			if m.phase == PhaseLoading {
				m.loadFrame++
			}
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case authStatusMsg:
		if msg.err != nil {
			m.logger.Warn("auth status check failed", "err", msg.err)
			return m, nil
		}
		m.auth = *msg.status
		return m, nil

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case cameraReadyMsg:
		return m.handleCameraReady(msg)

	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)

	case statsLoadedMsg:
		if msg.err != nil {
			return m, m.showToast(errorNotice(msg.err, "Could not load stats"), toastError)
		}
		m.history.ApplyStats(msg.stats)
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			return m, m.showToast(errorNotice(msg.err, "Could not load history"), toastError)
		}
		m.history.ApplyHistory(msg.entries, time.Now())
		return m, nil

	case feedbackSentMsg:
		if msg.err != nil {
			return m, m.showToast(errorNotice(msg.err, "Could not send feedback"), toastError)
		}
		m.feedbackSent = true
		return m, m.showToast("Feedback recorded", toastSuccess)

	case logSavedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to record analysis locally", "err", msg.err)
		}
		return m, nil

	case toastClearMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(ambientBar(max(m.width, 20), m.moodAccent))
	b.WriteString("\n")
	b.WriteString(m.renderNav())
	b.WriteString("\n\n")

	if m.authOpen {
		b.WriteString(m.renderAuth())
	} else {
		switch m.view {
		case DetectView:
			b.WriteString(m.renderDetect())
		case HistoryView:
			b.WriteString(m.renderHistory())
		}
	}

	if m.toast != nil {
		b.WriteString("\n\n")
		b.WriteString(m.renderToast())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return b.String()
}

// navigate switches the visible view, releasing the camera when leaving
// detect and triggering view-specific refresh. Unknown targets are a silent
// no-op.
func (m *Model) navigate(view ViewState) tea.Cmd {
	if view != DetectView && view != HistoryView {
		return nil
	}

	if m.view == DetectView && view != DetectView {
		m.coordinator.ReleaseCamera()
	}

	m.view = view

	switch view {
	case DetectView:
		m.resetDetection()
		return nil
	case HistoryView:
		m.history = render.HistoryViewModel{}
		return tea.Batch(m.loadStats(), m.loadHistory())
	}
	return nil
}

// resetDetection returns the detect view to mode selection and clears the
// ambient mood theme. In-flight submissions are invalidated by bumping the
// generation counter.
func (m *Model) resetDetection() {
	m.coordinator.Reset()
	m.phase = PhaseModeSelect
	m.result = nil
	m.trackCursor = 0
	m.moodAccent = ""
	m.cameraPending = false
	m.cameraErr = false
	m.gen++
}

func (m *Model) renderNav() string {
	nav := []string{"detect", "history"}
	active := int(m.view)

	parts := make([]string, 0, len(nav)+1)
	for i, name := range nav {
		if i == active && !m.authOpen {
			parts = append(parts, styles.title.Render("["+name+"]"))
		} else {
			parts = append(parts, styles.muted.Render(" "+name+" "))
		}
	}

	if m.auth.LoggedIn {
		parts = append(parts, styles.ok.Render(render.Sanitize(m.auth.Username)))
	} else {
		parts = append(parts, styles.muted.Render("not logged in"))
	}

	return strings.Join(parts, "  ")
}

func (m *Model) renderToast() string {
	switch m.toast.kind {
	case toastError:
		return styles.err.Render(m.toast.text)
	case toastInfo:
		return styles.warn.Render(m.toast.text)
	default:
		return styles.ok.Render(m.toast.text)
	}
}

// showToast displays a transient notice that auto-clears after the configured
// duration.
func (m *Model) showToast(text string, kind toastKind) tea.Cmd {
	m.toastSeq++
	seq := m.toastSeq
	m.toast = &toast{text: text, kind: kind}

	return tea.Tick(m.cfg.UI.ToastDuration(), func(time.Time) tea.Msg {
		return toastClearMsg{seq: seq}
	})
}

// Commands

func (m *Model) checkAuth() tea.Cmd {
	return func() tea.Msg {
		status, err := m.api.AuthStatusCheck(m.ctx)
		return authStatusMsg{status: status, err: err}
	}
}

func (m *Model) loadStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.api.Stats(m.ctx)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (m *Model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.api.History(m.ctx)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) sendFeedback(rating int) tea.Cmd {
	// Feedback without a session id is a no-op, not an error. A rating is
	// accepted once per session.
	if m.sessionID == "" || m.feedbackSent {
		return nil
	}
	sessionID := m.sessionID
	return func() tea.Msg {
		return feedbackSentMsg{err: m.api.SendFeedback(m.ctx, sessionID, rating)}
	}
}

// recordAnalysis appends a successful result to the local analysis log.
func (m *Model) recordAnalysis(result *models.AnalysisResult, inputType, excerpt string) tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return func() tea.Msg {
		return logSavedMsg{err: m.repo.Create(models.NewAnalysis(result, inputType, excerpt))}
	}
}

// errorNotice extracts a user-facing message from a failed call: the
// server-provided message when one exists, a generic connection notice on
// transport failure, else the per-action fallback.
func errorNotice(err error, fallback string) string {
	if errors.Is(err, shared.ErrConnection) {
		return "Connection error. Please try again."
	}

	for _, sentinel := range []error{shared.ErrAPIRequest, shared.ErrAuthFailed} {
		if errors.Is(err, sentinel) {
			msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
			if msg != "" && msg != err.Error() {
				return msg
			}
		}
	}

	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("Something went wrong: %v", err)
}
