package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.detect), key.Matches(msg, m.keys.back):
		return m, m.navigate(DetectView)
	case key.Matches(msg, m.keys.account):
		return m.handleAccountKey()
	case key.Matches(msg, m.keys.refresh):
		// Re-entering the view drops the stale snapshot and refetches both
		// halves.
		return m, m.navigate(HistoryView)
	}
	return m, nil
}

func (m *Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Your Journey"))
	b.WriteString("\n\n")

	if m.history.HasStats {
		b.WriteString(fmt.Sprintf("%s sessions   %s avg confidence   %s most felt\n\n",
			styles.ok.Render(fmt.Sprintf("%d", m.history.TotalSessions)),
			styles.ok.Render(fmt.Sprintf("%d%%", m.history.AvgConfidence)),
			styles.ok.Render(m.history.TopEmotion)))
	}

	switch {
	case !m.history.HasHistory:
		b.WriteString(fmt.Sprintf("%s loading...", m.spin.View()))
	case m.history.Empty:
		b.WriteString(styles.muted.Render("No sessions yet. Start by detecting your emotions!"))
	default:
		for _, item := range m.history.Items {
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				item.Glyph,
				styles.title.Render(item.Emotion),
				styles.help.Render(fmt.Sprintf("%d%% · %s · %s", item.ConfidencePercent, item.InputBadge, item.When))))
			if item.Excerpt != "" {
				b.WriteString("   " + styles.muted.Render("“"+item.Excerpt+"”") + "\n")
			}
			b.WriteString("   " + item.Mood + "\n\n")
		}
	}

	return b.String()
}
