package notification

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_FillsGeneratedFields(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	related := int64(7)
	mock.ExpectQuery(`INSERT INTO admin_notifications`).
		WithArgs(TypeOrder, "Nuevo pedido recibido", "Pedido de Ana por €7.00", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), created))

	n := &Notification{Type: TypeOrder, Title: "Nuevo pedido recibido", Message: "Pedido de Ana por €7.00", RelatedID: &related}
	require.NoError(t, Insert(context.Background(), mock, n))

	assert.Equal(t, int64(3), n.ID)
	assert.Equal(t, created, n.CreatedAt)
	assert.False(t, n.IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_MarkReadMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE admin_notifications SET is_read = TRUE WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = NewPGRepo(mock).MarkRead(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
