package repository

import (
	"database/sql"
	"errors"

	"footballiq/internal/database"
	"footballiq/internal/models"
)

// ErrNoFreezes is returned when a consume races an empty wallet
var ErrNoFreezes = errors.New("no freeze tokens available")

// FreezeRepository handles streak-freeze wallet and usage operations
type FreezeRepository struct {
	db *database.DB
}

// NewFreezeRepository creates a new freeze repository
func NewFreezeRepository(db *database.DB) *FreezeRepository {
	return &FreezeRepository{db: db}
}

// UsedDates returns all calendar dates a freeze has covered for the user
func (r *FreezeRepository) UsedDates(userID string) ([]string, error) {
	query := "SELECT date FROM freeze_usages WHERE user_id = ?"

	rows, err := r.db.Query(query, userID)
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

// Wallet returns the user's freeze wallet, zero-valued when no row exists yet
func (r *FreezeRepository) Wallet(userID string) (*models.FreezeWallet, error) {
	wallet := &models.FreezeWallet{UserID: userID}
	query := "SELECT available, last_milestone FROM freeze_wallets WHERE user_id = ?"
	err := r.db.QueryRow(query, userID).Scan(&wallet.Available, &wallet.LastMilestone)
	if err == sql.ErrNoRows {
		return wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// Available returns the number of consumable freeze tokens
func (r *FreezeRepository) Available(userID string) (int, error) {
	wallet, err := r.Wallet(userID)
	if err != nil {
		return 0, err
	}
	return wallet.Available, nil
}

// Consume spends one freeze token to cover date. Premium users have
// unlimited freezes, so their wallet is never decremented. The
// decrement is guarded against concurrent spends of the last token;
// a race surfaces as ErrNoFreezes.
func (r *FreezeRepository) Consume(userID, date string, premium bool) (*models.FreezeConsumption, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := ensureWallet(tx, userID); err != nil {
		return nil, err
	}

	source := models.FreezeSourcePremium
	if !premium {
		source = models.FreezeSourceStandard
		result, err := tx.Exec(`
			UPDATE freeze_wallets
			SET available = available - 1, updated_at = CURRENT_TIMESTAMP
			WHERE user_id = ? AND available > 0
		`, userID)
		if err != nil {
			return nil, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrNoFreezes
		}
	}

	insert := "INSERT INTO freeze_usages (user_id, date, source) VALUES (?, ?, ?)"
	if _, err := tx.Exec(insert, userID, date, source); err != nil {
		return nil, err
	}

	var remaining int
	if err := tx.QueryRow("SELECT available FROM freeze_wallets WHERE user_id = ?", userID).Scan(&remaining); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.FreezeConsumption{Source: source, Remaining: remaining}, nil
}

// AwardMilestone grants one freeze token for reaching a streak
// milestone. Each milestone pays out at most once, and the wallet never
// grows past maxStack; a capped wallet still records the milestone so
// later loads do not retry it.
func (r *FreezeRepository) AwardMilestone(userID string, milestone, maxStack int) (*models.MilestoneAward, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := ensureWallet(tx, userID); err != nil {
		return nil, err
	}

	var available, lastMilestone int
	query := "SELECT available, last_milestone FROM freeze_wallets WHERE user_id = ?"
	if err := tx.QueryRow(query, userID).Scan(&available, &lastMilestone); err != nil {
		return nil, err
	}

	if milestone <= lastMilestone {
		return &models.MilestoneAward{Awarded: false, TotalFreezes: available}, nil
	}

	newAvailable := available + 1
	if newAvailable > maxStack {
		newAvailable = maxStack
	}

	update := `
		UPDATE freeze_wallets
		SET available = ?, last_milestone = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`
	if _, err := tx.Exec(update, newAvailable, milestone, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.MilestoneAward{
		Awarded:      newAvailable > available,
		Milestone:    milestone,
		TotalFreezes: newAvailable,
	}, nil
}

// ensureWallet creates the wallet row on first touch
func ensureWallet(tx *database.Tx, userID string) error {
	var exists int
	err := tx.QueryRow("SELECT COUNT(*) FROM freeze_wallets WHERE user_id = ?", userID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}
	_, err = tx.Exec("INSERT INTO freeze_wallets (user_id, available, last_milestone) VALUES (?, 0, 0)", userID)
	return err
}
