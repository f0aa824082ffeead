// package render projects API responses into declarative view models: plain
// values the TUI and CLI map to presentation. Formatting and sanitization
// rules live here so they are independent of any rendering technology.
package render

import (
	"strings"
	"unicode"

	"github.com/Riddhi-crypto/Rooha/internal/models"
)

// ExcerptLength is the cutoff for input text excerpts in history items.
const ExcerptLength = 60

// TrackCard is the render model for one recommended track.
type TrackCard struct {
	Name        string
	Artist      string
	ImageURL    string
	HasPreview  bool
	PreviewURL  string
	ExternalURL string
}

// ResultViewModel is the render model for an analysis result.
type ResultViewModel struct {
	Glyph             string
	Emotion           string
	Mood              string
	ConfidencePercent int
	AccentColor       string
	MoodTheme         string // ambient theme key, e.g. "mood-happy"
	Tracks            []TrackCard
}

// NewResultViewModel projects an [models.AnalysisResult], sanitizing every
// user-supplied text field. Track order is preserved exactly as received.
func NewResultViewModel(result *models.AnalysisResult) ResultViewModel {
	vm := ResultViewModel{
		Glyph:             result.Emotion.Glyph(),
		Emotion:           Sanitize(string(result.Emotion)),
		Mood:              Sanitize(result.Mood),
		ConfidencePercent: result.ConfidencePercent(),
		AccentColor:       result.Emotion.Color(),
		MoodTheme:         MoodTheme(result.Emotion),
		Tracks:            make([]TrackCard, 0, len(result.Tracks)),
	}

	for _, t := range result.Tracks {
		vm.Tracks = append(vm.Tracks, TrackCard{
			Name:        Sanitize(t.Name),
			Artist:      Sanitize(t.Artist),
			ImageURL:    t.ImageURL,
			HasPreview:  t.HasPreview(),
			PreviewURL:  t.PreviewURL,
			ExternalURL: t.ExternalURL,
		})
	}

	return vm
}

// MoodTheme returns the ambient theme key for an emotion. Theme keys are
// mutually exclusive; the renderer clears any previous one before applying.
func MoodTheme(emotion models.EmotionTag) string {
	if emotion == "" {
		return ""
	}
	return "mood-" + string(emotion)
}

// Sanitize strips control characters and escape sequences from user-supplied
// text before it reaches the terminal. This is the terminal analog of HTML
// escaping and is mandatory for names, artists, and input excerpts.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(' ')
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
