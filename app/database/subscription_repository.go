package database

import (
	"database/sql"
	"errors"
	"fmt"

	sqlitelib "modernc.org/sqlite"
)

// SQLite extended result codes raised by the uniqueness invariant on
// subscriptions.channel_id.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// SubscriptionRepository handles database operations for subscriptions.
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Subscribe inserts a subscription record. A violated uniqueness constraint
// is not an error condition: created is false when the channel was already
// subscribed.
func (r *SubscriptionRepository) Subscribe(channelID, channelUsername string) (bool, error) {
	_, err := r.db.Exec(`
		INSERT INTO subscriptions (channel_id, channel_username)
		VALUES (?, ?)
	`, channelID, channelUsername)

	if isConstraintViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert subscription: %w", err)
	}

	return true, nil
}

// Unsubscribe deletes the subscription for the given channel. removed is
// false when no record existed; that is a soft status, not an error.
func (r *SubscriptionRepository) Unsubscribe(channelID string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM subscriptions WHERE channel_id = ?`, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// GetSubscriptions returns all subscription records.
func (r *SubscriptionRepository) GetSubscriptions() ([]Subscription, error) {
	rows, err := r.db.Query(`SELECT channel_id, channel_username FROM subscriptions`)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(&sub.ChannelID, &sub.ChannelUsername); err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", err)
	}

	return subs, nil
}

// GetSubscriptionCount returns the total number of subscriptions.
func (r *SubscriptionRepository) GetSubscriptionCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM subscriptions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get subscription count: %w", err)
	}
	return count, nil
}

func isConstraintViolation(err error) bool {
	var liteErr *sqlitelib.Error
	if !errors.As(err, &liteErr) {
		return false
	}
	code := liteErr.Code()
	return code == sqliteConstraintPrimaryKey || code == sqliteConstraintUnique
}
