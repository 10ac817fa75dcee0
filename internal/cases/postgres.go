package cases

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timestampLayout is the stored ISO-8601 UTC form. Seconds precision keeps
// every value the same width, so the rate-limit upsert can compare stored
// text chronologically.
const timestampLayout = time.RFC3339

type postgresStore struct {
	db       *sql.DB
	cooldown time.Duration
}

// NewPostgresStore returns a Store backed by the cases and rate_limit
// tables. cooldown is the minimum gap between two accepted images from the
// same sender.
func NewPostgresStore(db *sql.DB, cooldown time.Duration) Store {
	return &postgresStore{db: db, cooldown: cooldown}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timestampLayout)
}

// parseTimestamp accepts stored values with or without a zone suffix;
// zoneless values are treated as UTC.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Admit performs the check-and-write as one conditional upsert, so two
// near-simultaneous requests from the same sender cannot both be admitted:
// the row lock serializes them and the WHERE guard rejects the loser.
func (s *postgresStore) Admit(ctx context.Context, phone string, now time.Time) (bool, error) {
	phone = NormalizePhone(phone)
	cutoff := now.Add(-s.cooldown)

	query := `
		INSERT INTO rate_limit (phone, last_image) VALUES ($1, $2)
		ON CONFLICT (phone) DO UPDATE SET last_image = EXCLUDED.last_image
		WHERE rate_limit.last_image <= $3
	`
	res, err := s.db.ExecContext(ctx, query,
		phone, formatTimestamp(now), formatTimestamp(cutoff))
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *postgresStore) Record(ctx context.Context, c *Case) (int64, error) {
	c.Phone = NormalizePhone(c.Phone)
	query := `
		INSERT INTO cases (phone, timestamp, image_b64, diagnosis_json, escalated)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	escalated := 0
	if c.Escalated {
		escalated = 1
	}
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		c.Phone, formatTimestamp(c.Timestamp), c.ImageB64, c.DiagnosisJSON, escalated,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to record case: %w", err)
	}
	c.ID = id
	return id, nil
}

func (s *postgresStore) Escalate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE cases SET escalated = 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to escalate case %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresStore) Get(ctx context.Context, id int64) (*Case, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, phone, timestamp, image_b64, diagnosis_json, escalated FROM cases WHERE id = $1`, id)
	c, err := scanCase(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *postgresStore) List(ctx context.Context, f Filter) ([]Case, error) {
	query := `SELECT id, phone, timestamp, image_b64, diagnosis_json, escalated FROM cases`
	var args []interface{}
	var where []string
	if f.Phone != "" {
		args = append(args, "%"+f.Phone+"%")
		where = append(where, fmt.Sprintf("phone ILIKE $%d", len(args)))
	}
	if f.EscalatedOnly {
		where = append(where, "escalated = 1")
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var out []Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		// Confidence lives inside the stored JSON, so this filter is
		// applied after the scan, same as the review dashboard did.
		if !matchesConfidence(c, f.MinConfidence) {
			continue
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCase(row rowScanner) (*Case, error) {
	var c Case
	var ts string
	var escalated int
	if err := row.Scan(&c.ID, &c.Phone, &ts, &c.ImageB64, &c.DiagnosisJSON, &escalated); err != nil {
		return nil, err
	}
	parsed, err := parseTimestamp(ts)
	if err != nil {
		return nil, fmt.Errorf("bad timestamp on case %d: %w", c.ID, err)
	}
	c.Timestamp = parsed
	c.Escalated = escalated == 1
	return &c, nil
}
