package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEmotionTagGlyph(t *testing.T) {
	tc := []struct {
		name    string
		emotion EmotionTag
		want    string
	}{
		{name: "known emotion", emotion: EmotionHappy, want: "😊"},
		{name: "another known emotion", emotion: EmotionNeutral, want: "😐"},
		{name: "unknown tag falls back", emotion: EmotionTag("ecstatic"), want: DefaultGlyph},
		{name: "empty tag falls back", emotion: EmotionTag(""), want: DefaultGlyph},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.emotion.Glyph(); got != tt.want {
				t.Errorf("Glyph() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmotionTagColor(t *testing.T) {
	if got := EmotionSad.Color(); got != "#6C9BCF" {
		t.Errorf("Color() = %v, want #6C9BCF", got)
	}
	if got := EmotionTag("bored").Color(); got != DefaultColor {
		t.Errorf("Color() for unknown tag = %v, want %v", got, DefaultColor)
	}
}

func TestAnalysisResultDecoding(t *testing.T) {
	payload := `{
		"session_id": 42,
		"emotion": "happy",
		"mood": "Radiating sunshine",
		"confidence": 0.874,
		"tracks": [
			{"name": "Song A", "artist": "Artist A", "preview": "https://p/a.mp3", "url": "https://t/a"},
			{"name": "Song B", "artist": "Artist B"}
		]
	}`

	var result AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got := result.Session(); got != "42" {
		t.Errorf("Session() = %q, want %q", got, "42")
	}
	if got := result.ConfidencePercent(); got != 87 {
		t.Errorf("ConfidencePercent() = %d, want 87", got)
	}
	if len(result.Tracks) != 2 {
		t.Fatalf("len(Tracks) = %d, want 2", len(result.Tracks))
	}
	if !result.Tracks[0].HasPreview() {
		t.Error("Tracks[0].HasPreview() = false, want true")
	}
	if result.Tracks[1].HasPreview() {
		t.Error("Tracks[1].HasPreview() = true, want false")
	}
}

func TestAPITimeUnmarshal(t *testing.T) {
	tc := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "sqlite datetime",
			input: `"2024-03-15 09:30:00"`,
			want:  time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339",
			input: `"2024-03-15T09:30:00Z"`,
			want:  time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: `"2024-03-15"`,
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "null leaves zero time",
			input: `null`,
			want:  time.Time{},
		},
		{
			name:    "garbage",
			input:   `"yesterday"`,
			wantErr: true,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			var at APITime
			err := json.Unmarshal([]byte(tt.input), &at)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if !at.Time.Equal(tt.want) {
				t.Errorf("parsed time = %v, want %v", at.Time, tt.want)
			}
		})
	}
}

func TestStatsHelpers(t *testing.T) {
	stats := Stats{
		TotalSessions: 12,
		AvgConfidence: 0.825,
		ByEmotion: []EmotionCount{
			{DetectedEmotion: EmotionHappy, Count: 7},
			{DetectedEmotion: EmotionSad, Count: 5},
		},
	}

	if got := stats.AvgConfidencePercent(); got != 83 {
		t.Errorf("AvgConfidencePercent() = %d, want 83", got)
	}
	if got := stats.TopEmotion(); got != "happy" {
		t.Errorf("TopEmotion() = %q, want %q", got, "happy")
	}

	empty := Stats{}
	if got := empty.TopEmotion(); got != "—" {
		t.Errorf("TopEmotion() on empty stats = %q, want placeholder", got)
	}
}

func TestAnalysisValidate(t *testing.T) {
	result := &AnalysisResult{
		SessionID:  json.Number("7"),
		Emotion:    EmotionHappy,
		Mood:       "sunny",
		Confidence: 0.9,
	}

	tc := []struct {
		name    string
		mutate  func(*Analysis)
		wantErr bool
	}{
		{name: "valid text analysis", mutate: func(a *Analysis) {}},
		{
			name:    "confidence out of range",
			mutate:  func(a *Analysis) { a.confidence = 1.5 },
			wantErr: true,
		},
		{
			name:    "unknown input type",
			mutate:  func(a *Analysis) { a.inputType = "voice" },
			wantErr: true,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalysis(result, "text", "feeling good")
			a.SetID("a1b2c3")
			tt.mutate(a)
			err := a.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() returned %v", err)
			}
		})
	}
}
