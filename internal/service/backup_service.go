package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"footballiq/internal/database"
	"footballiq/internal/models"
)

// backupVersion guards against importing an incompatible export format
const backupVersion = "1"

// BackupData is the complete database export structure
type BackupData struct {
	Version      string                `json:"version"`
	ExportedAt   time.Time             `json:"exported_at"`
	DatabaseType string                `json:"database_type"`
	Users        []models.User         `json:"users"`
	Puzzles      []models.Puzzle       `json:"puzzles"`
	Attempts     []models.Attempt      `json:"attempts"`
	Wallets      []models.FreezeWallet `json:"freeze_wallets"`
	Usages       []models.FreezeUsage  `json:"freeze_usages"`
	AdUnlocks    []models.AdUnlock     `json:"ad_unlocks"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes the full database contents to a JSON file and returns
// the populated backup structure
func (s *BackupService) Export(path string) (*BackupData, error) {
	data := &BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.DriverName(),
	}

	var err error
	if data.Users, err = s.exportUsers(); err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	if data.Puzzles, err = s.exportPuzzles(); err != nil {
		return nil, fmt.Errorf("failed to export puzzles: %w", err)
	}
	if data.Attempts, err = s.exportAttempts(); err != nil {
		return nil, fmt.Errorf("failed to export attempts: %w", err)
	}
	if data.Wallets, err = s.exportWallets(); err != nil {
		return nil, fmt.Errorf("failed to export freeze wallets: %w", err)
	}
	if data.Usages, err = s.exportUsages(); err != nil {
		return nil, fmt.Errorf("failed to export freeze usages: %w", err)
	}
	if data.AdUnlocks, err = s.exportAdUnlocks(); err != nil {
		return nil, fmt.Errorf("failed to export ad unlocks: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to write backup file: %w", err)
	}

	return data, nil
}

// Import restores a JSON export into the database. With clear set, all
// existing rows are deleted first.
func (s *BackupService) Import(path string, clear bool) (*BackupData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	data := &BackupData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if data.Version != backupVersion {
		return nil, fmt.Errorf("unsupported backup version %q", data.Version)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if clear {
		// Child tables first to satisfy foreign keys.
		for _, table := range []string{"ad_unlocks", "freeze_usages", "freeze_wallets", "attempts", "puzzles", "users"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return nil, fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
	}

	for i := range data.Users {
		u := &data.Users[i]
		_, err := tx.Exec(
			"INSERT INTO users (id, secret_hash, timezone, is_premium) VALUES (?, ?, ?, ?)",
			u.ID, u.SecretHash, u.Timezone, u.IsPremium,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to import user %s: %w", u.ID, err)
		}
	}

	for i := range data.Puzzles {
		p := &data.Puzzles[i]
		_, err := tx.Exec(
			"INSERT INTO puzzles (id, game_mode, puzzle_date, difficulty, is_special, event_title, event_subtitle) VALUES (?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.GameMode, p.PuzzleDate, p.Difficulty, p.IsSpecial, p.EventTitle, p.EventSubtitle,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to import puzzle %s: %w", p.ID, err)
		}
	}

	for i := range data.Attempts {
		a := &data.Attempts[i]
		var score sql.NullInt64
		if a.Score != nil {
			score = sql.NullInt64{Int64: int64(*a.Score), Valid: true}
		}
		_, err := tx.Exec(
			"INSERT INTO attempts (user_id, puzzle_id, game_mode, puzzle_date, completed, score, score_display) VALUES (?, ?, ?, ?, ?, ?, ?)",
			a.UserID, a.PuzzleID, a.GameMode, a.PuzzleDate, a.Completed, score, a.ScoreDisplay,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to import attempt for puzzle %s: %w", a.PuzzleID, err)
		}
	}

	for i := range data.Wallets {
		w := &data.Wallets[i]
		_, err := tx.Exec(
			"INSERT INTO freeze_wallets (user_id, available, last_milestone) VALUES (?, ?, ?)",
			w.UserID, w.Available, w.LastMilestone,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to import freeze wallet for %s: %w", w.UserID, err)
		}
	}

	for i := range data.Usages {
		u := &data.Usages[i]
		_, err := tx.Exec(
			"INSERT INTO freeze_usages (user_id, date, source) VALUES (?, ?, ?)",
			u.UserID, u.Date, u.Source,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to import freeze usage %s/%s: %w", u.UserID, u.Date, err)
		}
	}

	for i := range data.AdUnlocks {
		u := &data.AdUnlocks[i]
		_, err := tx.Exec(
			"INSERT INTO ad_unlocks (id, user_id, puzzle_id, expires_at) VALUES (?, ?, ?, ?)",
			u.ID, u.UserID, u.PuzzleID, u.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to import ad unlock %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *BackupService) exportUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, secret_hash, timezone, is_premium, created_at, updated_at FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.SecretHash, &u.Timezone, &u.IsPremium, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *BackupService) exportPuzzles() ([]models.Puzzle, error) {
	rows, err := s.db.Query("SELECT id, game_mode, puzzle_date, difficulty, is_special, event_title, event_subtitle, created_at, updated_at FROM puzzles")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var puzzles []models.Puzzle
	for rows.Next() {
		var p models.Puzzle
		if err := rows.Scan(&p.ID, &p.GameMode, &p.PuzzleDate, &p.Difficulty, &p.IsSpecial, &p.EventTitle, &p.EventSubtitle, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, rows.Err()
}

func (s *BackupService) exportAttempts() ([]models.Attempt, error) {
	rows, err := s.db.Query("SELECT id, user_id, puzzle_id, game_mode, puzzle_date, completed, score, score_display, started_at, completed_at FROM attempts")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		var score sql.NullInt64
		var completedAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.UserID, &a.PuzzleID, &a.GameMode, &a.PuzzleDate, &a.Completed, &score, &a.ScoreDisplay, &a.StartedAt, &completedAt); err != nil {
			return nil, err
		}
		if score.Valid {
			v := int(score.Int64)
			a.Score = &v
		}
		if completedAt.Valid {
			a.CompletedAt = &completedAt.Time
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *BackupService) exportWallets() ([]models.FreezeWallet, error) {
	rows, err := s.db.Query("SELECT user_id, available, last_milestone, updated_at FROM freeze_wallets")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []models.FreezeWallet
	for rows.Next() {
		var w models.FreezeWallet
		if err := rows.Scan(&w.UserID, &w.Available, &w.LastMilestone, &w.UpdatedAt); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (s *BackupService) exportUsages() ([]models.FreezeUsage, error) {
	rows, err := s.db.Query("SELECT id, user_id, date, source, created_at FROM freeze_usages")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []models.FreezeUsage
	for rows.Next() {
		var u models.FreezeUsage
		if err := rows.Scan(&u.ID, &u.UserID, &u.Date, &u.Source, &u.CreatedAt); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}

func (s *BackupService) exportAdUnlocks() ([]models.AdUnlock, error) {
	rows, err := s.db.Query("SELECT id, user_id, puzzle_id, expires_at, created_at FROM ad_unlocks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocks []models.AdUnlock
	for rows.Next() {
		var u models.AdUnlock
		if err := rows.Scan(&u.ID, &u.UserID, &u.PuzzleID, &u.ExpiresAt, &u.CreatedAt); err != nil {
			return nil, err
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}
