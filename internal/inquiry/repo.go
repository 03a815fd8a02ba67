package inquiry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MikeMC777/cafe-demo/internal/notification"
	"github.com/MikeMC777/cafe-demo/internal/store"
)

var (
	ErrNotFound  = errors.New("inquiry not found")
	ErrDuplicate = errors.New("subscriber already exists")
)

const uniqueViolation = "23505"

type Repository interface {
	// CreateContact inserts m and n in one transaction.
	CreateContact(ctx context.Context, m *ContactMessage, n *notification.Notification) error
	ListContacts(ctx context.Context, limit int) ([]ContactMessage, error)
	DeleteContact(ctx context.Context, id int64) error

	FindSubscriber(ctx context.Context, email string) (*Subscriber, error)
	// CreateSubscriber returns ErrDuplicate when the email is already on file.
	CreateSubscriber(ctx context.Context, s *Subscriber, n *notification.Notification) error
	// Reactivate returns ErrNotFound when no subscriber matches email.
	Reactivate(ctx context.Context, email, name string, n *notification.Notification) error
	ListActiveSubscribers(ctx context.Context) ([]Subscriber, error)
	Deactivate(ctx context.Context, id int64) error

	CreateApplication(ctx context.Context, a *JobApplication, n *notification.Notification) error
	ListApplications(ctx context.Context, limit int) ([]JobApplication, error)
	DeleteApplication(ctx context.Context, id int64) error
}

type PGRepo struct{ db store.DB }

func NewPGRepo(db store.DB) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) CreateContact(ctx context.Context, m *ContactMessage, n *notification.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return store.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO contact_messages (name, email, subject, message, created_at)
			VALUES ($1,$2,$3,$4,NOW())
			RETURNING id, created_at
		`, m.Name, m.Email, m.Subject, m.Message).Scan(&m.ID, &m.CreatedAt); err != nil {
			return err
		}
		id := m.ID
		n.RelatedID = &id
		return notification.Insert(ctx, tx, n)
	})
}

func (r *PGRepo) ListContacts(ctx context.Context, limit int) ([]ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ContactMessage{}
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PGRepo) DeleteContact(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
}

func (r *PGRepo) FindSubscriber(ctx context.Context, email string) (*Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var s Subscriber
	err := r.db.QueryRow(ctx, `
		SELECT id, email, COALESCE(name,''), subscribed_at, active
		FROM newsletter_subscribers WHERE lower(email) = lower($1)
	`, email).Scan(&s.ID, &s.Email, &s.Name, &s.SubscribedAt, &s.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGRepo) CreateSubscriber(ctx context.Context, s *Subscriber, n *notification.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	err := store.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO newsletter_subscribers (email, name, subscribed_at, active)
			VALUES ($1, NULLIF($2,''), NOW(), TRUE)
			RETURNING id, subscribed_at
		`, s.Email, s.Name).Scan(&s.ID, &s.SubscribedAt); err != nil {
			return err
		}
		s.Active = true
		id := s.ID
		n.RelatedID = &id
		return notification.Insert(ctx, tx, n)
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) Reactivate(ctx context.Context, email, name string, n *notification.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return store.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, `
			UPDATE newsletter_subscribers
			SET active = TRUE, name = COALESCE(NULLIF($2,''), name)
			WHERE lower(email) = lower($1)
			RETURNING id
		`, email, name).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		n.RelatedID = &id
		return notification.Insert(ctx, tx, n)
	})
}

func (r *PGRepo) ListActiveSubscribers(ctx context.Context) ([]Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, email, COALESCE(name,''), subscribed_at, active
		FROM newsletter_subscribers
		WHERE active
		ORDER BY subscribed_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Subscriber{}
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.SubscribedAt, &s.Active); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Deactivate keeps the row so a later subscribe reactivates it.
func (r *PGRepo) Deactivate(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `UPDATE newsletter_subscribers SET active = FALSE WHERE id = $1`, id)
}

func (r *PGRepo) CreateApplication(ctx context.Context, a *JobApplication, n *notification.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return store.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO job_applications (name, email, phone, position, experience, motivation, cv_filename, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),NOW())
			RETURNING id, created_at
		`, a.Name, a.Email, a.Phone, a.Position, a.Experience, a.Motivation, a.CVFilename,
		).Scan(&a.ID, &a.CreatedAt); err != nil {
			return err
		}
		id := a.ID
		n.RelatedID = &id
		return notification.Insert(ctx, tx, n)
	})
}

func (r *PGRepo) ListApplications(ctx context.Context, limit int) ([]JobApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, phone, position, experience, motivation, COALESCE(cv_filename,''), created_at
		FROM job_applications
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []JobApplication{}
	for rows.Next() {
		var a JobApplication
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Position, &a.Experience,
			&a.Motivation, &a.CVFilename, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) DeleteApplication(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
}

func (r *PGRepo) deleteByID(ctx context.Context, sql string, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
