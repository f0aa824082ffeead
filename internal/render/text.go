package render

import (
	"bytes"
	"fmt"
)

// FormatResult renders a result view model as plain text for CLI output.
func FormatResult(vm ResultViewModel) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s  %s — %s\n", vm.Glyph, vm.Emotion, vm.Mood))
	buf.WriteString(fmt.Sprintf("Confidence: %d%%\n", vm.ConfidencePercent))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n", len(vm.Tracks)))

	for i, t := range vm.Tracks {
		marker := " "
		if t.HasPreview {
			marker = "▶"
		}
		buf.WriteString(fmt.Sprintf("%2d. %s %s - %s\n", i+1, marker, t.Artist, t.Name))
		if t.ExternalURL != "" {
			buf.WriteString(fmt.Sprintf("       %s\n", t.ExternalURL))
		}
	}

	return buf.Bytes()
}

// FormatHistory renders a history view model as plain text for CLI output.
func FormatHistory(vm HistoryViewModel) []byte {
	var buf bytes.Buffer

	if vm.HasStats {
		buf.WriteString(fmt.Sprintf("Sessions: %d  |  Avg confidence: %d%%  |  Top emotion: %s\n\n",
			vm.TotalSessions, vm.AvgConfidence, vm.TopEmotion))
	}

	if !vm.HasHistory {
		return buf.Bytes()
	}

	if vm.Empty {
		buf.WriteString("No sessions yet. Start by detecting your emotions!\n")
		return buf.Bytes()
	}

	for _, item := range vm.Items {
		buf.WriteString(fmt.Sprintf("%s %s — %s • %d%% • %s • %s\n",
			item.Glyph, item.Emotion, item.Mood, item.ConfidencePercent, item.InputBadge, item.When))
		if item.Excerpt != "" {
			buf.WriteString(fmt.Sprintf("   \"%s\"\n", item.Excerpt))
		}
	}

	return buf.Bytes()
}
