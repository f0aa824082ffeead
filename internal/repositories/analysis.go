package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Riddhi-crypto/Rooha/internal/models"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
)

// AnalysisRepository implements models.Repository[*models.Analysis] for the
// local analysis log.
type AnalysisRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.Analysis] = (*AnalysisRepository)(nil)

// NewAnalysisRepository creates a new AnalysisRepository with the given database connection
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create inserts a new [models.Analysis] into the log with generated ID and sequence
func (r *AnalysisRepository) Create(analysis *models.Analysis) error {
	sequence, err := NextSequence(r.db)
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	analysis.SetID(shared.GenerateID())
	analysis.SetSequence(sequence)

	if err := analysis.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO analyses (id, sequence, session_id, emotion, mood, confidence, input_type, input_excerpt, track_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		analysis.ID(),
		analysis.Sequence(),
		analysis.SessionID(),
		string(analysis.Emotion()),
		analysis.Mood(),
		analysis.Confidence(),
		analysis.InputType(),
		analysis.InputExcerpt(),
		analysis.TrackCount(),
		analysis.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// Get retrieves an [models.Analysis] by its ID
func (r *AnalysisRepository) Get(id string) (*models.Analysis, error) {
	row := r.db.QueryRow(`
		SELECT id, sequence, session_id, emotion, mood, confidence, input_type, input_excerpt, track_count, created_at
		FROM analyses WHERE id = ?
	`, id)
	return scanAnalysis(row.Scan)
}

// Delete removes an analysis from the log by its ID
func (r *AnalysisRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("analysis %s not found", id)
	}

	return nil
}

// List retrieves analyses matching the given criteria, newest first.
//
// Supported criteria: "emotion", "input_type", "limit".
func (r *AnalysisRepository) List(criteria map[string]any) ([]*models.Analysis, error) {
	query := `
		SELECT id, sequence, session_id, emotion, mood, confidence, input_type, input_excerpt, track_count, created_at
		FROM analyses
	`
	var args []any
	var where []string

	if emotion, ok := criteria["emotion"]; ok {
		where = append(where, "emotion = ?")
		args = append(args, emotion)
	}
	if inputType, ok := criteria["input_type"]; ok {
		where = append(where, "input_type = ?")
		args = append(args, inputType)
	}

	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	query += " ORDER BY created_at DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*models.Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return analyses, nil
}

// scanAnalysis reconstructs a model from one row's scan function.
func scanAnalysis(scan func(...any) error) (*models.Analysis, error) {
	var (
		id, sessionID, emotion, mood, inputType string
		inputExcerpt                            sql.NullString
		sequence, trackCount                    int
		confidence                              float64
		createdAt                               time.Time
	)

	err := scan(&id, &sequence, &sessionID, &emotion, &mood, &confidence, &inputType, &inputExcerpt, &trackCount, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	return models.RestoreAnalysis(id, sequence, sessionID, models.EmotionTag(emotion), mood, confidence, inputType, inputExcerpt.String, trackCount, createdAt), nil
}
