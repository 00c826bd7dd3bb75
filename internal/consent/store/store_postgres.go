package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"datasentinel/internal/consent/models"
	"datasentinel/pkg/platform/sentinel"
)

// PostgresStore persists consent records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
	tx *sql.Tx
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx binds the store to an open transaction.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{tx: tx}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer() dbExecutor {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

const recordColumns = `user_id, watermark, policy, honeytoken, expiry_date, updated_at`

var placeholderTime = time.Unix(0, 0).UTC()

func (s *PostgresStore) Find(ctx context.Context, userID string) (*models.Record, error) {
	record, err := scanRecord(s.execer().QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM consent_records WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find consent: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) Save(ctx context.Context, record *models.Record) error {
	return upsertRecord(ctx, s.execer(), record)
}

// Execute locks the user's row (creating it if needed) for the duration of mutate.
func (s *PostgresStore) Execute(ctx context.Context, userID string, mutate func(*models.Record) error) (*models.Record, error) {
	if s.tx != nil {
		return s.executeWithTx(ctx, s.tx, userID, mutate)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin consent execute tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	record, err := s.executeWithTx(ctx, tx, userID, mutate)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit consent execute: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) executeWithTx(ctx context.Context, tx *sql.Tx, userID string, mutate func(*models.Record) error) (*models.Record, error) {
	// A placeholder row gives concurrent first writers a row to queue on. It
	// disappears with the transaction if mutate fails.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO consent_records (user_id, expiry_date, updated_at)
		VALUES ($1, 'epoch', 'epoch')
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return nil, fmt.Errorf("reserve consent row: %w", err)
	}
	record, err := scanRecord(tx.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM consent_records WHERE user_id = $1 FOR UPDATE`, userID))
	if err != nil {
		return nil, fmt.Errorf("find consent for execute: %w", err)
	}
	if record.UpdatedAt.Equal(placeholderTime) {
		record = &models.Record{UserID: userID}
	}

	if err := mutate(record); err != nil {
		return nil, err
	}
	if err := upsertRecord(ctx, tx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Record, error) {
	rows, err := s.execer().QueryContext(ctx, `SELECT `+recordColumns+` FROM consent_records ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list consents: %w", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consent: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consents: %w", err)
	}
	return records, nil
}

func upsertRecord(ctx context.Context, exec dbExecutor, r *models.Record) error {
	_, err := exec.ExecContext(ctx, `
		INSERT INTO consent_records (user_id, watermark, policy, honeytoken, expiry_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			watermark = EXCLUDED.watermark,
			policy = EXCLUDED.policy,
			honeytoken = EXCLUDED.honeytoken,
			expiry_date = EXCLUDED.expiry_date,
			updated_at = EXCLUDED.updated_at
	`, r.UserID, r.Watermark, r.Policy, r.Honeytoken, r.ExpiryDate, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert consent: %w", err)
	}
	return nil
}

type recordRow interface {
	Scan(dest ...any) error
}

func scanRecord(row recordRow) (*models.Record, error) {
	var r models.Record
	if err := row.Scan(&r.UserID, &r.Watermark, &r.Policy, &r.Honeytoken, &r.ExpiryDate, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.ExpiryDate = r.ExpiryDate.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return &r, nil
}
