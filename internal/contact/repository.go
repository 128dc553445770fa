package contact

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository persists messages.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	UpdateStatus(ctx context.Context, id string, status Status, lastErr string) error
	List(ctx context.Context, limit int) ([]Message, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

// SQLiteRepo stores messages in the contact_messages table.
type SQLiteRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db, now: time.Now}
}

func (r *SQLiteRepo) Create(ctx context.Context, m *Message) error {
	now := r.now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, message, relay, status, last_error, hashed_ip, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Message, m.Relay, string(m.Status), m.LastError, m.HashedIP, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) UpdateStatus(ctx context.Context, id string, status Status, lastErr string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contact_messages SET status = ?, last_error = ?, updated_at = ? WHERE id = ?`,
		string(status), lastErr, r.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating message %s: %w", id, err)
	}
	return requireRow(res, id)
}

// List returns the newest messages first.
func (r *SQLiteRepo) List(ctx context.Context, limit int) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, message, relay, status, last_error, hashed_ip, created_at, updated_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var status string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Relay, &status, &m.LastError, &m.HashedIP, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Status = Status(status)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting message %s: %w", id, err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepo) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM contact_messages GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting messages: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[Status(status)] = n
	}
	return counts, rows.Err()
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}
