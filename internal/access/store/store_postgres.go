package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"datasentinel/internal/access/models"
)

// PostgresStore persists restrictions and restriction requests. A
// partner-wide restriction is stored with user_id '*'.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const restrictionColumns = `partner_id, user_id, reason, created_at`

func (s *PostgresStore) Add(ctx context.Context, r *models.Restriction) (bool, error) {
	return addRestriction(ctx, s.db, r)
}

func addRestriction(ctx context.Context, exec dbExecutor, r *models.Restriction) (bool, error) {
	res, err := exec.ExecContext(ctx, `
		INSERT INTO restrictions (partner_id, user_id, reason, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (partner_id, user_id) DO NOTHING
	`, r.PartnerID, r.UserID, r.Reason, r.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert restriction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert restriction rows affected: %w", err)
	}
	return n == 1, nil
}

func (s *PostgresStore) Remove(ctx context.Context, partnerID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM restrictions WHERE partner_id = $1 AND user_id = $2`, partnerID, userID)
	if err != nil {
		return false, fmt.Errorf("delete restriction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete restriction rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *PostgresStore) ListByPartner(ctx context.Context, partnerID string) ([]*models.Restriction, error) {
	return s.queryRestrictions(ctx,
		`SELECT `+restrictionColumns+` FROM restrictions WHERE partner_id = $1 ORDER BY partner_id, user_id`, partnerID)
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]*models.Restriction, error) {
	return s.queryRestrictions(ctx,
		`SELECT `+restrictionColumns+` FROM restrictions WHERE user_id = $1 OR user_id = $2 ORDER BY partner_id, user_id`,
		userID, models.AllUsers)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Restriction, error) {
	return s.queryRestrictions(ctx, `SELECT `+restrictionColumns+` FROM restrictions ORDER BY partner_id, user_id`)
}

func (s *PostgresStore) queryRestrictions(ctx context.Context, query string, args ...any) ([]*models.Restriction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query restrictions: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Restriction, 0)
	for rows.Next() {
		var r models.Restriction
		if err := rows.Scan(&r.PartnerID, &r.UserID, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan restriction: %w", err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restrictions: %w", err)
	}
	return out, nil
}

// SaveRequest inserts the request unless one exists, then returns what is on file.
func (s *PostgresStore) SaveRequest(ctx context.Context, req *models.RestrictionRequest) (*models.RestrictionRequest, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO restriction_requests (partner_id, user_id, requested_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (partner_id, user_id) DO NOTHING
	`, req.PartnerID, req.UserID, req.RequestedAt)
	if err != nil {
		return nil, false, fmt.Errorf("insert restriction request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("insert restriction request rows affected: %w", err)
	}
	stored, err := scanRequest(s.db.QueryRowContext(ctx, `
		SELECT partner_id, user_id, requested_at, approved_at
		FROM restriction_requests WHERE partner_id = $1 AND user_id = $2
	`, req.PartnerID, req.UserID))
	if err != nil {
		return nil, false, fmt.Errorf("read restriction request: %w", err)
	}
	return stored, n == 1, nil
}

// Approve writes the restriction and stamps the pending request in one transaction.
func (s *PostgresStore) Approve(ctx context.Context, r *models.Restriction, at time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin approve tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	created, err := addRestriction(ctx, tx, r)
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE restriction_requests SET approved_at = $3
		WHERE partner_id = $1 AND user_id = $2 AND approved_at IS NULL
	`, r.PartnerID, r.UserID, at); err != nil {
		return false, fmt.Errorf("approve restriction request: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit approve: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) ListRequests(ctx context.Context) ([]*models.RestrictionRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT partner_id, user_id, requested_at, approved_at
		FROM restriction_requests ORDER BY requested_at, partner_id, user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list restriction requests: %w", err)
	}
	defer rows.Close()

	out := make([]*models.RestrictionRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restriction request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restriction requests: %w", err)
	}
	return out, nil
}

type requestRow interface {
	Scan(dest ...any) error
}

func scanRequest(row requestRow) (*models.RestrictionRequest, error) {
	var (
		req        models.RestrictionRequest
		approvedAt sql.NullTime
	)
	if err := row.Scan(&req.PartnerID, &req.UserID, &req.RequestedAt, &approvedAt); err != nil {
		return nil, err
	}
	req.RequestedAt = req.RequestedAt.UTC()
	if approvedAt.Valid {
		t := approvedAt.Time.UTC()
		req.ApprovedAt = &t
	}
	return &req, nil
}
