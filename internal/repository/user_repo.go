package repository

import (
	"database/sql"

	"footballiq/internal/database"
	"footballiq/internal/models"
)

// UserRepository handles device account database operations
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new device account
func (r *UserRepository) Create(u *models.User) error {
	query := "INSERT INTO users (id, secret_hash, timezone, is_premium) VALUES (?, ?, ?, ?)"
	_, err := r.db.Exec(query, u.ID, u.SecretHash, u.Timezone, u.IsPremium)
	return err
}

// GetByID retrieves a user by device ID, or nil if absent
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := `
		SELECT id, secret_hash, timezone, is_premium, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.SecretHash,
		&user.Timezone,
		&user.IsPremium,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SetPremium flips the premium entitlement for a user
func (r *UserRepository) SetPremium(id string, premium bool) error {
	query := "UPDATE users SET is_premium = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, premium, id)
	return err
}
