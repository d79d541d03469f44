package repository

import (
	"database/sql"

	"footballiq/internal/database"
	"footballiq/internal/models"
)

// AttemptRepository handles puzzle attempt database operations
type AttemptRepository struct {
	db *database.DB
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// GetByUserAndPuzzle retrieves a user's attempt on one puzzle.
// Returns nil when the user has not started the puzzle.
func (r *AttemptRepository) GetByUserAndPuzzle(userID, puzzleID string) (*models.Attempt, error) {
	query := `
		SELECT id, user_id, puzzle_id, game_mode, puzzle_date, completed,
		       score, score_display, started_at, completed_at
		FROM attempts
		WHERE user_id = ? AND puzzle_id = ?
	`

	attempt := &models.Attempt{}
	var score sql.NullInt64
	var completedAt sql.NullTime

	err := r.db.QueryRow(query, userID, puzzleID).Scan(
		&attempt.ID,
		&attempt.UserID,
		&attempt.PuzzleID,
		&attempt.GameMode,
		&attempt.PuzzleDate,
		&attempt.Completed,
		&score,
		&attempt.ScoreDisplay,
		&attempt.StartedAt,
		&completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if score.Valid {
		s := int(score.Int64)
		attempt.Score = &s
	}
	if completedAt.Valid {
		attempt.CompletedAt = &completedAt.Time
	}

	return attempt, nil
}

// Upsert creates or updates the user's attempt on a puzzle. A completed
// attempt is never downgraded back to in-progress.
func (r *AttemptRepository) Upsert(a *models.Attempt) error {
	var existingID int64
	var existingCompleted bool
	query := "SELECT id, completed FROM attempts WHERE user_id = ? AND puzzle_id = ?"
	err := r.db.QueryRow(query, a.UserID, a.PuzzleID).Scan(&existingID, &existingCompleted)

	var score sql.NullInt64
	if a.Score != nil {
		score = sql.NullInt64{Int64: int64(*a.Score), Valid: true}
	}

	if err == sql.ErrNoRows {
		insert := `
			INSERT INTO attempts (user_id, puzzle_id, game_mode, puzzle_date, completed, score, score_display)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		id, err := r.db.ExecReturningID(insert, a.UserID, a.PuzzleID, a.GameMode, a.PuzzleDate, a.Completed, score, a.ScoreDisplay)
		if err != nil {
			return err
		}
		a.ID = id
		if a.Completed {
			return r.markCompleted(a.ID)
		}
		return nil
	}
	if err != nil {
		return err
	}

	completed := a.Completed || existingCompleted
	update := `
		UPDATE attempts
		SET completed = ?, score = ?, score_display = ?
		WHERE id = ?
	`
	if _, err := r.db.Exec(update, completed, score, a.ScoreDisplay, existingID); err != nil {
		return err
	}

	a.ID = existingID
	a.Completed = completed
	if a.Completed && !existingCompleted {
		return r.markCompleted(a.ID)
	}
	return nil
}

// markCompleted stamps the completion time on an attempt
func (r *AttemptRepository) markCompleted(id int64) error {
	query := "UPDATE attempts SET completed_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}

// CompletedDates returns the distinct puzzle dates the user completed
// at least one puzzle on. Order is not significant; the streak
// calculator sorts its own input.
func (r *AttemptRepository) CompletedDates(userID string) ([]string, error) {
	query := `
		SELECT DISTINCT puzzle_date
		FROM attempts
		WHERE user_id = ? AND completed = ?
	`

	rows, err := r.db.Query(query, userID, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

// CountCompleted returns the total number of completed attempts
func (r *AttemptRepository) CountCompleted(userID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM attempts WHERE user_id = ? AND completed = ?"
	err := r.db.QueryRow(query, userID, true).Scan(&count)
	return count, err
}

// CountCompletedOnDate returns how many puzzles the user completed for
// one calendar date
func (r *AttemptRepository) CountCompletedOnDate(userID, date string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM attempts WHERE user_id = ? AND puzzle_date = ? AND completed = ?"
	err := r.db.QueryRow(query, userID, date, true).Scan(&count)
	return count, err
}

// LastCompletedDate returns the most recent completed puzzle date, or
// an empty string when the user has never completed a puzzle.
// YYYY-MM-DD sorts lexically in chronological order.
func (r *AttemptRepository) LastCompletedDate(userID string) (string, error) {
	var date sql.NullString
	query := "SELECT MAX(puzzle_date) FROM attempts WHERE user_id = ? AND completed = ?"
	err := r.db.QueryRow(query, userID, true).Scan(&date)
	if err != nil {
		return "", err
	}
	return date.String, nil
}
