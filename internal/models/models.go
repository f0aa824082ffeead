// package models defines the data model for the Rooha emotion detection client
package models

import (
	"encoding/json"
	"math"
	"time"
)

// Model defines the base interface for all persistent models in the client.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Track represents one recommended track from an analysis response.
//
// Tracks are immutable once received; the client never reorders the list.
type Track struct {
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	ImageURL    string `json:"image,omitempty"`
	PreviewURL  string `json:"preview,omitempty"`
	ExternalURL string `json:"url,omitempty"`
}

// HasPreview reports whether the track carries a playable audio preview.
func (t Track) HasPreview() bool { return t.PreviewURL != "" }

// AnalysisResult represents a successful response from either analysis endpoint.
//
// SessionID is opaque to the client; the backend happens to issue integers, so
// it is decoded as [json.Number] and round-tripped unchanged into feedback
// submissions.
type AnalysisResult struct {
	SessionID  json.Number `json:"session_id"`
	Emotion    EmotionTag  `json:"emotion"`
	Mood       string      `json:"mood"`
	Confidence float64     `json:"confidence"`
	Tracks     []Track     `json:"tracks"`
}

// Session returns the session id as an opaque string, empty when unset.
func (r *AnalysisResult) Session() string {
	return r.SessionID.String()
}

// ConfidencePercent returns the confidence as a rounded percentage.
func (r *AnalysisResult) ConfidencePercent() int {
	return int(math.Round(r.Confidence * 100))
}

// HistoryEntry represents one past session from /api/history.
type HistoryEntry struct {
	DetectedEmotion EmotionTag `json:"detected_emotion"`
	Mood            string     `json:"mood"`
	Confidence      float64    `json:"confidence"`
	InputText       string     `json:"input_text,omitempty"`
	InputType       string     `json:"input_type"`
	CreatedAt       APITime    `json:"created_at"`
}

// ConfidencePercent returns the confidence as a rounded percentage.
func (h HistoryEntry) ConfidencePercent() int {
	return int(math.Round(h.Confidence * 100))
}

// EmotionCount pairs an emotion with its occurrence count in the stats breakdown.
type EmotionCount struct {
	DetectedEmotion EmotionTag `json:"detected_emotion"`
	Count           int        `json:"count"`
}

// Stats represents the aggregate figures from /api/stats.
type Stats struct {
	TotalSessions int            `json:"total_sessions"`
	AvgConfidence float64        `json:"avg_confidence"`
	ByEmotion     []EmotionCount `json:"by_emotion"`
}

// AvgConfidencePercent returns the average confidence as a rounded percentage.
func (s *Stats) AvgConfidencePercent() int {
	return int(math.Round(s.AvgConfidence * 100))
}

// TopEmotion returns the most frequent emotion, or a placeholder when the
// breakdown is empty.
func (s *Stats) TopEmotion() string {
	if len(s.ByEmotion) == 0 {
		return "—"
	}
	return string(s.ByEmotion[0].DetectedEmotion)
}

// AuthStatus represents the current identity from /api/auth/status.
type AuthStatus struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}
