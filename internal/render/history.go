package render

import (
	"fmt"
	"time"

	"github.com/Riddhi-crypto/Rooha/internal/models"
)

// HistoryItem is the render model for one past session.
type HistoryItem struct {
	Glyph             string
	Emotion           string
	Mood              string
	ConfidencePercent int
	Excerpt           string // sanitized, truncated input text; empty for face input
	InputBadge        string
	When              string // relative timestamp
}

// HistoryViewModel is the render model for the history view. Stats and items
// are populated independently, so either half may be missing when its fetch
// failed.
type HistoryViewModel struct {
	HasStats      bool
	TotalSessions int
	AvgConfidence int    // rounded percent
	TopEmotion    string // placeholder dash when the breakdown is empty

	HasHistory bool
	Empty      bool
	Items      []HistoryItem
}

// ApplyStats fills the summary figures from a stats response.
func (vm *HistoryViewModel) ApplyStats(stats *models.Stats) {
	vm.HasStats = true
	vm.TotalSessions = stats.TotalSessions
	vm.AvgConfidence = stats.AvgConfidencePercent()
	vm.TopEmotion = stats.TopEmotion()
}

// ApplyHistory fills the session list, preserving backend order
// (newest first). An empty list sets the dedicated empty state.
func (vm *HistoryViewModel) ApplyHistory(entries []models.HistoryEntry, now time.Time) {
	vm.HasHistory = true
	vm.Empty = len(entries) == 0
	vm.Items = make([]HistoryItem, 0, len(entries))

	for _, e := range entries {
		item := HistoryItem{
			Glyph:             e.DetectedEmotion.Glyph(),
			Emotion:           Sanitize(string(e.DetectedEmotion)),
			Mood:              Sanitize(e.Mood),
			ConfidencePercent: e.ConfidencePercent(),
			InputBadge:        inputBadge(e.InputType),
			When:              RelativeTime(e.CreatedAt.Time, now),
		}
		if e.InputText != "" {
			item.Excerpt = Truncate(Sanitize(e.InputText), ExcerptLength)
		}
		vm.Items = append(vm.Items, item)
	}
}

func inputBadge(inputType string) string {
	if inputType == "text" {
		return "✏️ Text"
	}
	return "📸 Face"
}

// RelativeTime renders t relative to now ("just now", "5m ago", "3d ago");
// older timestamps fall back to a date.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
