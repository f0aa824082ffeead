package models

// EmotionTag is one of the discrete emotions the backend model detects.
type EmotionTag string

const (
	EmotionHappy    EmotionTag = "happy"
	EmotionSad      EmotionTag = "sad"
	EmotionAngry    EmotionTag = "angry"
	EmotionFear     EmotionTag = "fear"
	EmotionSurprise EmotionTag = "surprise"
	EmotionDisgust  EmotionTag = "disgust"
	EmotionNeutral  EmotionTag = "neutral"
)

// Fallbacks for tags outside the known set.
const (
	DefaultGlyph = "🎵"
	DefaultColor = "#C084FC"
)

var emotionGlyphs = map[EmotionTag]string{
	EmotionHappy:    "😊",
	EmotionSad:      "😢",
	EmotionAngry:    "😤",
	EmotionFear:     "😰",
	EmotionSurprise: "😲",
	EmotionDisgust:  "🤢",
	EmotionNeutral:  "😐",
}

var emotionColors = map[EmotionTag]string{
	EmotionHappy:    "#FFD93D",
	EmotionSad:      "#6C9BCF",
	EmotionAngry:    "#FF6B6B",
	EmotionFear:     "#A78BFA",
	EmotionSurprise: "#F472B6",
	EmotionDisgust:  "#6EE7B7",
	EmotionNeutral:  "#94A3B8",
}

// Known reports whether the tag is in the closed emotion set.
func (e EmotionTag) Known() bool {
	_, ok := emotionGlyphs[e]
	return ok
}

// Glyph returns the display glyph for the emotion, or [DefaultGlyph] for
// unknown tags.
func (e EmotionTag) Glyph() string {
	if g, ok := emotionGlyphs[e]; ok {
		return g
	}
	return DefaultGlyph
}

// Color returns the accent color for the emotion, or [DefaultColor] for
// unknown tags.
func (e EmotionTag) Color() string {
	if c, ok := emotionColors[e]; ok {
		return c
	}
	return DefaultColor
}
