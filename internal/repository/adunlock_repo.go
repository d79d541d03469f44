package repository

import (
	"time"

	"footballiq/internal/database"
	"footballiq/internal/models"
)

// AdUnlockRepository handles rewarded-ad unlock database operations
type AdUnlockRepository struct {
	db *database.DB
}

// NewAdUnlockRepository creates a new ad unlock repository
func NewAdUnlockRepository(db *database.DB) *AdUnlockRepository {
	return &AdUnlockRepository{db: db}
}

// Create records a new unlock
func (r *AdUnlockRepository) Create(unlock *models.AdUnlock) error {
	query := "INSERT INTO ad_unlocks (id, user_id, puzzle_id, expires_at) VALUES (?, ?, ?, ?)"
	_, err := r.db.Exec(query, unlock.ID, unlock.UserID, unlock.PuzzleID, unlock.ExpiresAt)
	return err
}

// ValidPuzzleIDs returns the set of puzzle IDs the user has an
// unexpired unlock for
func (r *AdUnlockRepository) ValidPuzzleIDs(userID string, now time.Time) (map[string]bool, error) {
	query := "SELECT puzzle_id FROM ad_unlocks WHERE user_id = ? AND expires_at > ?"

	rows, err := r.db.Query(query, userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unlocked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		unlocked[id] = true
	}

	return unlocked, rows.Err()
}

// PurgeExpired deletes all unlocks that expired before now and returns
// how many rows were removed
func (r *AdUnlockRepository) PurgeExpired(now time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM ad_unlocks WHERE expires_at <= ?", now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
