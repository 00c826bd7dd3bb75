package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PostgresStore persists entries in the audit_entries table; seq is a BIGSERIAL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, e Entry) (Entry, error) {
	query := `
		INSERT INTO audit_entries
			(kind, partner_id, user_id, subject, outcome, reason, detail, ip, risk_delta, request_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq
	`
	err := s.db.QueryRowContext(ctx, query,
		string(e.Kind), e.PartnerID, e.UserID, e.Subject, e.Outcome, e.Reason,
		e.Detail, e.IP, e.RiskDelta, e.RequestID, e.OccurredAt,
	).Scan(&e.Seq)
	if err != nil {
		return Entry{}, fmt.Errorf("append audit entry: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if len(f.Kinds) > 0 {
		kinds := make([]string, len(f.Kinds))
		for i, k := range f.Kinds {
			kinds[i] = string(k)
		}
		add("kind = ANY($%d)", kinds)
	}
	if f.PartnerID != "" {
		add("partner_id = $%d", f.PartnerID)
	}
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Outcome != "" {
		add("outcome = $%d", f.Outcome)
	}
	if !f.Since.IsZero() {
		add("occurred_at >= $%d", f.Since)
	}

	query := `SELECT seq, kind, partner_id, user_id, subject, outcome, reason, detail, ip, risk_delta, request_id, occurred_at FROM audit_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.Seq, &kind, &e.PartnerID, &e.UserID, &e.Subject, &e.Outcome,
			&e.Reason, &e.Detail, &e.IP, &e.RiskDelta, &e.RequestID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}
