package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"datasentinel/internal/honeytoken/models"
	"datasentinel/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists honeytokens in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const tokenColumns = `id, type, value, created_at, assigned_partner, assigned_at`

func (s *PostgresStore) Create(ctx context.Context, token *models.Honeytoken) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO honeytokens (id, type, value, created_at)
		VALUES ($1, $2, $3, $4)
	`, token.ID, string(token.Type), token.Value, token.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert honeytoken: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Honeytoken, error) {
	return s.findOne(ctx, `SELECT `+tokenColumns+` FROM honeytokens WHERE id = $1`, id)
}

func (s *PostgresStore) FindByValue(ctx context.Context, value string) (*models.Honeytoken, error) {
	return s.findOne(ctx, `SELECT `+tokenColumns+` FROM honeytokens WHERE value = $1`, value)
}

// MarkUsed assigns the partner only while assigned_partner is still NULL, so
// concurrent callers race on a single row update and the first one wins.
func (s *PostgresStore) MarkUsed(ctx context.Context, id, partnerID string, at time.Time) (*models.Honeytoken, error) {
	_, err := s.db.ExecContext(ctx, `
		UPDATE honeytokens
		SET assigned_partner = $2, assigned_at = $3
		WHERE id = $1 AND assigned_partner IS NULL
	`, id, partnerID, at)
	if err != nil {
		return nil, fmt.Errorf("mark honeytoken used: %w", err)
	}
	return s.FindByID(ctx, id)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Honeytoken, error) {
	return s.findMany(ctx, `SELECT `+tokenColumns+` FROM honeytokens ORDER BY created_at, id`)
}

func (s *PostgresStore) ListByPartner(ctx context.Context, partnerID string) ([]*models.Honeytoken, error) {
	return s.findMany(ctx, `SELECT `+tokenColumns+` FROM honeytokens WHERE assigned_partner = $1 ORDER BY created_at, id`, partnerID)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, args ...any) (*models.Honeytoken, error) {
	token, err := scanToken(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find honeytoken: %w", err)
	}
	return token, nil
}

func (s *PostgresStore) findMany(ctx context.Context, query string, args ...any) ([]*models.Honeytoken, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list honeytokens: %w", err)
	}
	defer rows.Close()

	var tokens []*models.Honeytoken
	for rows.Next() {
		token, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("scan honeytoken: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate honeytokens: %w", err)
	}
	return tokens, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanToken(row rowScanner) (*models.Honeytoken, error) {
	var (
		token      models.Honeytoken
		typ        string
		partner    sql.NullString
		assignedAt sql.NullTime
	)
	if err := row.Scan(&token.ID, &typ, &token.Value, &token.CreatedAt, &partner, &assignedAt); err != nil {
		return nil, err
	}
	token.Type = models.Type(typ)
	token.AssignedPartner = partner.String
	if assignedAt.Valid {
		at := assignedAt.Time.UTC()
		token.AssignedAt = &at
	}
	token.CreatedAt = token.CreatedAt.UTC()
	return &token, nil
}
