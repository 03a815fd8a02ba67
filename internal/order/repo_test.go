package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/cafe-demo/internal/notification"
)

func TestPGRepo_CreateWritesOrderAndNotificationTogether(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("Ana", "ana@example.com", "", pgxmock.AnyArg(), "7.00", "", StatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), now))
	mock.ExpectQuery(`INSERT INTO admin_notifications`).
		WithArgs(notification.TypeOrder, "Nuevo pedido recibido", "Pedido de Ana por €7.00", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))
	mock.ExpectCommit()

	o := &Order{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Items:         []Item{{ProductID: 1, ProductName: "Cappuccino", Quantity: 2, Price: 3.5}},
		TotalAmount:   7,
		Status:        StatusPending,
	}
	n := &notification.Notification{Type: notification.TypeOrder, Title: "Nuevo pedido recibido", Message: "Pedido de Ana por €7.00"}
	require.NoError(t, NewPGRepo(mock).Create(context.Background(), o, n))

	assert.Equal(t, int64(12), o.ID)
	require.NotNil(t, n.RelatedID)
	assert.Equal(t, int64(12), *n.RelatedID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_CreateRollsBackWhenNotificationFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("", "", "", "[]", "0.00", "", StatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), time.Now()))
	mock.ExpectQuery(`INSERT INTO admin_notifications`).
		WithArgs(notification.TypeOrder, "", "", pgxmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewPGRepo(mock).Create(context.Background(), &Order{Status: StatusPending}, &notification.Notification{Type: notification.TypeOrder})
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_GetByIDDecodesItemsAndTotal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "customer_name", "customer_email", "customer_phone", "items", "total_amount", "notes", "status", "created_at"}).
		AddRow(int64(3), "Ana", "ana@example.com", "", `[{"product_id":1,"product_name":"Cappuccino","quantity":2,"price":3.5,"notes":null}]`, "7.00", "", "pending", time.Now())
	mock.ExpectQuery(`FROM orders WHERE id = \$1`).WithArgs(int64(3)).WillReturnRows(rows)

	o, err := NewPGRepo(mock).GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 7.0, o.TotalAmount)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Cappuccino", o.Items[0].ProductName)
	assert.Nil(t, o.Items[0].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
