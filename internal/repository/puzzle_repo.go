package repository

import (
	"database/sql"

	"footballiq/internal/database"
	"footballiq/internal/models"
)

// PuzzleRepository handles puzzle catalog database operations
type PuzzleRepository struct {
	db *database.DB
}

// NewPuzzleRepository creates a new puzzle repository
func NewPuzzleRepository(db *database.DB) *PuzzleRepository {
	return &PuzzleRepository{db: db}
}

const puzzleColumns = `id, game_mode, puzzle_date, difficulty, is_special,
	       event_title, event_subtitle, created_at, updated_at`

func scanPuzzle(scanner interface{ Scan(...interface{}) error }) (*models.Puzzle, error) {
	p := &models.Puzzle{}
	err := scanner.Scan(
		&p.ID,
		&p.GameMode,
		&p.PuzzleDate,
		&p.Difficulty,
		&p.IsSpecial,
		&p.EventTitle,
		&p.EventSubtitle,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a puzzle by its catalog ID, or nil if absent
func (r *PuzzleRepository) GetByID(id string) (*models.Puzzle, error) {
	query := "SELECT " + puzzleColumns + " FROM puzzles WHERE id = ?"

	p, err := scanPuzzle(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetForDate retrieves all catalog entries scheduled for one date,
// special entries included. Callers split specials out themselves.
func (r *PuzzleRepository) GetForDate(date string) ([]models.Puzzle, error) {
	query := "SELECT " + puzzleColumns + " FROM puzzles WHERE puzzle_date = ? ORDER BY game_mode"

	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var puzzles []models.Puzzle
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, *p)
	}

	return puzzles, rows.Err()
}

// Upsert inserts a catalog entry or refreshes an existing one by ID
func (r *PuzzleRepository) Upsert(p *models.Puzzle) error {
	var existing string
	err := r.db.QueryRow("SELECT id FROM puzzles WHERE id = ?", p.ID).Scan(&existing)

	if err == sql.ErrNoRows {
		insert := `
			INSERT INTO puzzles (id, game_mode, puzzle_date, difficulty, is_special, event_title, event_subtitle)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		_, err := r.db.Exec(insert, p.ID, p.GameMode, p.PuzzleDate, p.Difficulty, p.IsSpecial, p.EventTitle, p.EventSubtitle)
		return err
	}
	if err != nil {
		return err
	}

	update := `
		UPDATE puzzles
		SET game_mode = ?, puzzle_date = ?, difficulty = ?, is_special = ?,
		    event_title = ?, event_subtitle = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err = r.db.Exec(update, p.GameMode, p.PuzzleDate, p.Difficulty, p.IsSpecial, p.EventTitle, p.EventSubtitle, p.ID)
	return err
}

// CountAll returns the total number of catalog entries
func (r *PuzzleRepository) CountAll() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM puzzles").Scan(&count)
	return count, err
}
