package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-demo/internal/notification"
	"github.com/MikeMC777/cafe-demo/internal/store"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	// Create inserts o and n in one transaction. n.RelatedID is set to the new order id.
	Create(ctx context.Context, o *Order, n *notification.Notification) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, limit int) ([]Order, error)
	// UpdateStatus changes the status and appends n in one transaction.
	UpdateStatus(ctx context.Context, id int64, status string, n *notification.Notification) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*Stats, error)
}

type PGRepo struct{ db store.DB }

func NewPGRepo(db store.DB) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order, n *notification.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	items, err := EncodeItems(o.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	return store.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO orders (customer_name, customer_email, customer_phone, items, total_amount, notes, status, created_at)
			VALUES ($1,$2,NULLIF($3,''),$4,$5,NULLIF($6,''),$7,NOW())
			RETURNING id, created_at
		`, o.CustomerName, o.CustomerEmail, o.CustomerPhone, string(items),
			decimal.NewFromFloat(o.TotalAmount).StringFixed(2), o.Notes, o.Status,
		).Scan(&o.ID, &o.CreatedAt); err != nil {
			return err
		}
		id := o.ID
		n.RelatedID = &id
		return notification.Insert(ctx, tx, n)
	})
}

const orderCols = `id, customer_name, customer_email, COALESCE(customer_phone,''), items::text,
	total_amount::text, COALESCE(notes,''), status, created_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		items string
		total string
	)
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &items,
		&total, &o.Notes, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if o.Items, err = DecodeItems([]byte(items)); err != nil {
		return nil, fmt.Errorf("decode items of order %d: %w", o.ID, err)
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse total of order %d: %w", o.ID, err)
	}
	o.TotalAmount = amount.InexactFloat64()
	return &o, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *PGRepo) List(ctx context.Context, limit int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+orderCols+`
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id int64, status string, n *notification.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return store.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		n.RelatedID = &id
		return notification.Insert(ctx, tx, n)
	})
}

func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var (
		s       Stats
		revenue string
	)
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COALESCE(SUM(total_amount) FILTER (WHERE status IN ('pending','completed')), 0)::text
		FROM orders
	`).Scan(&s.TotalOrders, &s.PendingOrders, &s.CompletedOrders, &revenue); err != nil {
		return nil, err
	}
	rev, err := decimal.NewFromString(revenue)
	if err != nil {
		return nil, fmt.Errorf("parse revenue: %w", err)
	}
	s.TotalRevenue = rev.InexactFloat64()

	rows, err := r.db.Query(ctx, `
		SELECT id, customer_name, total_amount::text, status, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s.RecentOrders = []RecentOrder{}
	for rows.Next() {
		var (
			ro    RecentOrder
			total string
		)
		if err := rows.Scan(&ro.ID, &ro.CustomerName, &total, &ro.Status, &ro.CreatedAt); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(total)
		if err != nil {
			return nil, err
		}
		ro.TotalAmount = amount.InexactFloat64()
		s.RecentOrders = append(s.RecentOrders, ro)
	}
	return &s, rows.Err()
}
