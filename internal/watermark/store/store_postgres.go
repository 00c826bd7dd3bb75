package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"datasentinel/internal/watermark/models"
	"datasentinel/pkg/platform/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts the mapping or, when the marker exists, returns the stored row
// if it describes the same disclosure.
func (s *PostgresStore) Save(ctx context.Context, wm *models.Watermark) (*models.Watermark, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watermarks (marker, partner_id, user_id, issued_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (marker) DO NOTHING
	`, wm.Marker, wm.PartnerID, wm.UserID, wm.Timestamp, wm.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert watermark: %w", err)
	}
	stored, err := s.FindByMarker(ctx, wm.Marker)
	if err != nil {
		return nil, err
	}
	if !sameDisclosure(stored, wm) {
		return nil, sentinel.ErrConflict
	}
	return stored, nil
}

func (s *PostgresStore) FindByMarker(ctx context.Context, marker string) (*models.Watermark, error) {
	var wm models.Watermark
	err := s.db.QueryRowContext(ctx, `
		SELECT marker, partner_id, user_id, issued_at, created_at
		FROM watermarks
		WHERE marker = $1
	`, marker).Scan(&wm.Marker, &wm.PartnerID, &wm.UserID, &wm.Timestamp, &wm.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find watermark: %w", err)
	}
	wm.Timestamp = wm.Timestamp.UTC()
	wm.CreatedAt = wm.CreatedAt.UTC()
	return &wm, nil
}
