package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/username/honorarios/src/models"
)

type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// GetProfile returns (nil, nil) when the user has not stored a profile.
func (s *ProfileStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	var email, currency sql.NullString
	var role string
	err := s.db.QueryRowContext(ctx, `SELECT uid, email, currency, role FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.UID, &email, &currency, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying profile for userID %s: %w", userID, err)
	}
	p.Email = email.String
	p.Currency = currency.String
	p.Role = models.Role(role)
	return &p, nil
}

func (s *ProfileStore) SaveProfile(ctx context.Context, userID string, p models.Profile) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO profiles (user_id, uid, email, currency, role) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET uid = excluded.uid, email = excluded.email,
			currency = excluded.currency, role = excluded.role, updated_at = CURRENT_TIMESTAMP`,
		userID, p.UID, p.Email, p.Currency, string(p.Role))
	if err != nil {
		return fmt.Errorf("error saving profile for userID %s: %w", userID, err)
	}
	return nil
}
