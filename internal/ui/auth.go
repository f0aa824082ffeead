package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Riddhi-crypto/Rooha/internal/models"
)

// Auth overlay field layouts. Login takes email and password, register adds a
// username on top.

func loginInputs() []textinput.Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	email.Focus()
	return []textinput.Model{email, password}
}

func registerInputs() []textinput.Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 60

	inputs := loginInputs()
	inputs[0].Blur()
	username.Focus()
	return append([]textinput.Model{username}, inputs...)
}

// handleAccountKey opens the auth overlay, or logs out when a session is
// already active.
func (m *Model) handleAccountKey() (tea.Model, tea.Cmd) {
	if m.auth.LoggedIn {
		return m, m.logout()
	}

	m.authOpen = true
	m.authTab = 0
	m.authFocus = 0
	m.authInputs = loginInputs()
	return m, textinput.Blink
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.authOpen = false
		return m, nil
	case key.Matches(msg, m.keys.nextTab):
		m.authTab = 1 - m.authTab
		m.authFocus = 0
		if m.authTab == 0 {
			m.authInputs = loginInputs()
		} else {
			m.authInputs = registerInputs()
		}
		return m, textinput.Blink
	case key.Matches(msg, m.keys.enter):
		if m.authFocus < len(m.authInputs)-1 {
			return m, m.focusAuthInput(m.authFocus + 1)
		}
		return m, m.submitAuth()
	case key.Matches(msg, m.keys.down):
		return m, m.focusAuthInput((m.authFocus + 1) % len(m.authInputs))
	case key.Matches(msg, m.keys.up):
		return m, m.focusAuthInput((m.authFocus + len(m.authInputs) - 1) % len(m.authInputs))
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m *Model) focusAuthInput(i int) tea.Cmd {
	m.authInputs[m.authFocus].Blur()
	m.authFocus = i
	return m.authInputs[i].Focus()
}

func (m *Model) submitAuth() tea.Cmd {
	values := make([]string, len(m.authInputs))
	for i, input := range m.authInputs {
		values[i] = strings.TrimSpace(input.Value())
	}

	for _, v := range values {
		if v == "" {
			return m.showToast("Please fill in all fields", toastError)
		}
	}

	if m.authTab == 0 {
		return func() tea.Msg {
			return authDoneMsg{action: "login", err: m.api.Login(m.ctx, values[0], values[1])}
		}
	}
	return func() tea.Msg {
		return authDoneMsg{action: "register", err: m.api.Register(m.ctx, values[0], values[1], values[2])}
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{action: "logout", err: m.api.Logout(m.ctx)}
	}
}

func (m *Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.action == "logout" {
		// Logout is best effort; the status check reconciles either way.
		if msg.err != nil {
			m.logger.Warn("logout request failed", "err", msg.err)
		}
		m.auth.LoggedIn = false
		m.auth.Username = ""
		return m, tea.Batch(m.checkAuth(), m.showToast("Logged out", toastInfo))
	}

	if msg.err != nil {
		// The overlay stays open so the user can correct and retry.
		return m, m.showToast(errorNotice(msg.err, "Something went wrong"), toastError)
	}

	m.authOpen = false
	greeting := "Welcome back!"
	if msg.action == "register" {
		greeting = "Account created! Welcome to Rooha."
	}
	return m, tea.Batch(m.checkAuth(), m.showToast(greeting, toastSuccess))
}

func (m *Model) renderAuth() string {
	tabs := []string{"login", "register"}
	var header []string
	for i, t := range tabs {
		if i == m.authTab {
			header = append(header, styles.title.Render("["+t+"]"))
		} else {
			header = append(header, styles.help.Render(" "+t+" "))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, " "))
	b.WriteString("\n\n")
	for _, input := range m.authInputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.nextTab, m.keys.back}))

	return accentCard(models.DefaultColor, b.String())
}
