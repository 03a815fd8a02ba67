package notification

import (
	"context"
	"errors"

	"github.com/MikeMC777/cafe-demo/internal/store"
)

var (
	ErrNotFound = errors.New("notification not found")
)

type Repository interface {
	Append(ctx context.Context, n *Notification) error
	List(ctx context.Context, limit int) ([]Notification, error)
	UnreadByType(ctx context.Context) (map[string]int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
	ClearAll(ctx context.Context) (int64, error)
}

// Insert appends n using q, which may be a transaction owned by the producer.
// It fills ID, IsRead and CreatedAt.
func Insert(ctx context.Context, q store.Querier, n *Notification) error {
	n.IsRead = false
	return q.QueryRow(ctx, `
		INSERT INTO admin_notifications (type, title, message, related_id, is_read, created_at)
		VALUES ($1,$2,$3,$4,FALSE,NOW())
		RETURNING id, created_at
	`, n.Type, n.Title, n.Message, n.RelatedID).Scan(&n.ID, &n.CreatedAt)
}

type PGRepo struct{ db store.DB }

func NewPGRepo(db store.DB) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Append(ctx context.Context, n *Notification) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()
	return Insert(ctx, r.db, n)
}

func (r *PGRepo) List(ctx context.Context, limit int) ([]Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, type, title, message, related_id, is_read, created_at
		FROM admin_notifications
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PGRepo) UnreadByType(ctx context.Context) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT type, COUNT(*)
		FROM admin_notifications
		WHERE is_read = FALSE
		GROUP BY type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		out[typ] = n
	}
	return out, rows.Err()
}

func (r *PGRepo) MarkRead(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE admin_notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) MarkAllRead(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE admin_notifications SET is_read = TRUE WHERE is_read = FALSE`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM admin_notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ClearAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM admin_notifications`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
