package models

import (
	"fmt"
	"time"
)

// Analysis is the persisted record of one analysis run from this client.
//
// Records are append-only: the local log is a convenience for reviewing what
// this client submitted, not a cache of backend history.
type Analysis struct {
	id           string
	sequence     int
	sessionID    string
	emotion      EmotionTag
	mood         string
	confidence   float64
	inputType    string
	inputExcerpt string
	trackCount   int
	createdAt    time.Time
}

var _ Model = (*Analysis)(nil)

// NewAnalysis builds an Analysis record from a result and the input that produced it.
func NewAnalysis(result *AnalysisResult, inputType, inputExcerpt string) *Analysis {
	return &Analysis{
		sessionID:    result.SessionID.String(),
		emotion:      result.Emotion,
		mood:         result.Mood,
		confidence:   result.Confidence,
		inputType:    inputType,
		inputExcerpt: inputExcerpt,
		trackCount:   len(result.Tracks),
		createdAt:    time.Now().UTC(),
	}
}

// RestoreAnalysis reconstructs an Analysis from persisted columns.
func RestoreAnalysis(id string, sequence int, sessionID string, emotion EmotionTag, mood string, confidence float64, inputType, inputExcerpt string, trackCount int, createdAt time.Time) *Analysis {
	return &Analysis{
		id:           id,
		sequence:     sequence,
		sessionID:    sessionID,
		emotion:      emotion,
		mood:         mood,
		confidence:   confidence,
		inputType:    inputType,
		inputExcerpt: inputExcerpt,
		trackCount:   trackCount,
		createdAt:    createdAt,
	}
}

func (a *Analysis) ID() string           { return a.id }
func (a *Analysis) Sequence() int        { return a.sequence }
func (a *Analysis) SessionID() string    { return a.sessionID }
func (a *Analysis) Emotion() EmotionTag  { return a.emotion }
func (a *Analysis) Mood() string         { return a.mood }
func (a *Analysis) Confidence() float64  { return a.confidence }
func (a *Analysis) InputType() string    { return a.inputType }
func (a *Analysis) InputExcerpt() string { return a.inputExcerpt }
func (a *Analysis) TrackCount() int      { return a.trackCount }
func (a *Analysis) CreatedAt() time.Time { return a.createdAt }

// SetID assigns the generated identifier. Called by the repository on insert.
func (a *Analysis) SetID(id string) { a.id = id }

// SetSequence assigns the generated sequence number. Called by the repository on insert.
func (a *Analysis) SetSequence(seq int) { a.sequence = seq }

// Validate checks if the record's data is valid.
func (a *Analysis) Validate() error {
	if a.id == "" {
		return fmt.Errorf("analysis ID is required")
	}
	if a.sessionID == "" {
		return fmt.Errorf("analysis session ID is required")
	}
	if a.emotion == "" {
		return fmt.Errorf("analysis emotion is required")
	}
	if a.confidence < 0 || a.confidence > 1 {
		return fmt.Errorf("analysis confidence must be in [0, 1], got %f", a.confidence)
	}
	if a.inputType != "text" && a.inputType != "face" {
		return fmt.Errorf("analysis input type must be text or face, got %q", a.inputType)
	}
	return nil
}
