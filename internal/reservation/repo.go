package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MikeMC777/cafe-demo/internal/notification"
	"github.com/MikeMC777/cafe-demo/internal/store"
)

var (
	ErrNotFound = errors.New("reservation not found")
)

// AdmitFunc decides, inside the booking transaction, whether a reservation may
// be inserted. counter sees the transaction's snapshot.
type AdmitFunc func(ctx context.Context, counter SlotCounter) error

type Repository interface {
	SlotCounter
	// Create serializes bookings of the same date, runs admit, then inserts r
	// and n in one transaction. n.RelatedID is set to the new id.
	Create(ctx context.Context, r *Reservation, n *notification.Notification, admit AdmitFunc) error
	GetByID(ctx context.Context, id int64) (*Reservation, error)
	List(ctx context.Context, limit int) ([]Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status string, n *notification.Notification) error
	Update(ctx context.Context, r *Reservation) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, today string) (*Stats, error)
}

type PGRepo struct{ db store.DB }

func NewPGRepo(db store.DB) *PGRepo { return &PGRepo{db: db} }

// querierCounter runs the counting queries on a pool or a transaction.
type querierCounter struct{ q store.Querier }

func (c querierCounter) CountActiveWithin(ctx context.Context, date, clock string, window time.Duration) (int, error) {
	var n int
	err := c.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reservations
		WHERE reservation_date = $1::date
		  AND ABS(EXTRACT(EPOCH FROM (reservation_time - $2::time))) < $3
		  AND status IN ('pending','confirmed')
	`, date, clock, window.Seconds()).Scan(&n)
	return n, err
}

func (c querierCounter) CountActiveByTime(ctx context.Context, date string) (map[string]int, error) {
	rows, err := c.q.Query(ctx, `
		SELECT to_char(reservation_time, 'HH24:MI'), COUNT(*)
		FROM reservations
		WHERE reservation_date = $1::date AND status IN ('pending','confirmed')
		GROUP BY 1
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			clock string
			n     int
		)
		if err := rows.Scan(&clock, &n); err != nil {
			return nil, err
		}
		out[clock] = n
	}
	return out, rows.Err()
}

func (r *PGRepo) CountActiveWithin(ctx context.Context, date, clock string, window time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()
	return querierCounter{r.db}.CountActiveWithin(ctx, date, clock, window)
}

func (r *PGRepo) CountActiveByTime(ctx context.Context, date string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()
	return querierCounter{r.db}.CountActiveByTime(ctx, date)
}

func (r *PGRepo) Create(ctx context.Context, res *Reservation, n *notification.Notification, admit AdmitFunc) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return store.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('reservations:' || $1))`, res.Date); err != nil {
			return err
		}
		if admit != nil {
			if err := admit(ctx, querierCounter{tx}); err != nil {
				return err
			}
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO reservations (customer_name, customer_email, customer_phone, party_size,
			                          reservation_date, reservation_time, notes, status, created_at)
			VALUES ($1,$2,$3,$4,$5::date,$6::time,NULLIF($7,''),$8,NOW())
			RETURNING id, created_at
		`, res.CustomerName, res.CustomerEmail, res.CustomerPhone, res.PartySize,
			res.Date, res.Time, res.Notes, res.Status,
		).Scan(&res.ID, &res.CreatedAt); err != nil {
			return err
		}
		id := res.ID
		n.RelatedID = &id
		return notification.Insert(ctx, tx, n)
	})
}

const reservationCols = `id, customer_name, customer_email, customer_phone, party_size,
	to_char(reservation_date, 'YYYY-MM-DD'), to_char(reservation_time, 'HH24:MI'),
	COALESCE(notes,''), status, created_at`

func scanReservation(row pgx.Row, res *Reservation) error {
	return row.Scan(&res.ID, &res.CustomerName, &res.CustomerEmail, &res.CustomerPhone, &res.PartySize,
		&res.Date, &res.Time, &res.Notes, &res.Status, &res.CreatedAt)
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var res Reservation
	err := scanReservation(r.db.QueryRow(ctx, `SELECT `+reservationCols+` FROM reservations WHERE id = $1`, id), &res)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PGRepo) List(ctx context.Context, limit int) ([]Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 200
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+reservationCols+`
		FROM reservations
		ORDER BY reservation_date DESC, reservation_time DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Reservation{}
	for rows.Next() {
		var res Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id int64, status string, n *notification.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	return store.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE reservations SET status = $2 WHERE id = $1`, id, status)
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

func (r *PGRepo) Update(ctx context.Context, res *Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET customer_name = $2, customer_email = $3, customer_phone = $4, party_size = $5,
		    reservation_date = $6::date, reservation_time = $7::time, notes = NULLIF($8,''), status = $9
		WHERE id = $1
	`, res.ID, res.CustomerName, res.CustomerEmail, res.CustomerPhone, res.PartySize,
		res.Date, res.Time, res.Notes, res.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Stats(ctx context.Context, today string) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, store.Timeout)
	defer cancel()

	var s Stats
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'confirmed'),
		       COUNT(*) FILTER (WHERE reservation_date = $1::date)
		FROM reservations
	`, today).Scan(&s.TotalReservations, &s.PendingReservations, &s.ConfirmedReservations, &s.TodayReservations); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, customer_name, party_size, to_char(reservation_date, 'YYYY-MM-DD'),
		       to_char(reservation_time, 'HH24:MI'), status
		FROM reservations
		ORDER BY created_at DESC, id DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s.RecentReservations = []RecentReservation{}
	for rows.Next() {
		var rr RecentReservation
		if err := rows.Scan(&rr.ID, &rr.CustomerName, &rr.PartySize, &rr.Date, &rr.Time, &rr.Status); err != nil {
			return nil, err
		}
		s.RecentReservations = append(s.RecentReservations, rr)
	}
	return &s, rows.Err()
}
