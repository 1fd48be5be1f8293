package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/splitstuff/splitstuff/internal/models"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// UpsertProfile creates the profile or refreshes its display name and UPI ID.
// An empty UPIID keeps the stored one.
func (s *SQLiteStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	return upsertProfile(ctx, s.db, profile)
}

func upsertProfile(ctx context.Context, db execer, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt == 0 {
		profile.CreatedAt = time.Now().Unix()
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO profiles (id, display_name, upi_id, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET display_name = excluded.display_name, upi_id = COALESCE(excluded.upi_id, profiles.upi_id)`,
		profile.ID, profile.DisplayName, nullString(profile.UPIID), profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID.
func (s *SQLiteStore) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	profile := &models.Profile{}
	var upi sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, display_name, upi_id, created_at FROM profiles WHERE id = ?",
		profileID,
	).Scan(&profile.ID, &profile.DisplayName, &upi, &profile.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("profile", profileID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.UPIID = upi.String
	return profile, nil
}

// nullString stores empty optional text as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
