package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/catalog"
	"github.com/MikeMC777/cafe-demo/internal/config"
	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/mail"
	"github.com/MikeMC777/cafe-demo/internal/notification"
)

// memRepo keeps orders and the notifications written alongside them.
type memRepo struct {
	orders        map[int64]Order
	notifications []notification.Notification
	nextID        int64
	failCreate    error
}

func newMemRepo() *memRepo { return &memRepo{orders: map[int64]Order{}} }

func (m *memRepo) Create(ctx context.Context, o *Order, n *notification.Notification) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	m.nextID++
	o.ID = m.nextID
	o.CreatedAt = time.Now()
	id := o.ID
	n.RelatedID = &id
	n.ID = int64(len(m.notifications) + 1)
	m.orders[o.ID] = *o
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (m *memRepo) List(ctx context.Context, limit int) ([]Order, error) {
	out := []Order{}
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(ctx context.Context, id int64, status string, n *notification.Notification) error {
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	n.RelatedID = &id
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memRepo) Stats(ctx context.Context) (*Stats, error) { return &Stats{}, nil }

type stubProducts map[int64]catalog.Product

func (s stubProducts) Lookup(ctx context.Context, id int64) (*catalog.Product, error) {
	p, ok := s[id]
	if !ok {
		return nil, apperr.Validation("Producto %d no existe", id)
	}
	if !p.Available {
		return nil, apperr.Validation("Producto %s no está disponible", p.Name)
	}
	return &p, nil
}

type recordingQueue struct {
	msgs []mail.Message
	err  error
}

func (q *recordingQueue) Enqueue(ctx context.Context, msgs ...mail.Message) error {
	if q.err != nil {
		return q.err
	}
	q.msgs = append(q.msgs, msgs...)
	return nil
}

var menu = stubProducts{
	1: {ID: 1, Name: "Cappuccino", Price: 3.50, Category: "cafes", Available: true},
	2: {ID: 2, Name: "Croissant", Price: 2.25, Category: "bolleria", Available: true},
	3: {ID: 3, Name: "Mocha", Price: 4.10, Category: "cafes", Available: false},
	4: {ID: 4, Name: "Agua", Price: 0.10, Category: "bebidas", Available: true},
}

func newTestService(t *testing.T, repo *memRepo, q mail.Queue) *Service {
	return NewService(Deps{
		Repo:     repo,
		Products: menu,
		Mail:     q,
		Business: config.BusinessConfig{Name: "Cafe Demo", Phone: "+34 600 000 000"},
		Now:      func() time.Time { return time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC) },
		Log:      logger.NewTest(t),
	})
}

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Items:         []CreateOrderItem{{ProductID: 1, Quantity: 2}},
	}
}

func TestCreate_CappuccinoTwice(t *testing.T) {
	repo := newMemRepo()
	q := &recordingQueue{}
	svc := newTestService(t, repo, q)

	o, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), o.ID)
	assert.Equal(t, 7.00, o.TotalAmount)
	assert.Equal(t, StatusPending, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Cappuccino", o.Items[0].ProductName)
	assert.Equal(t, 3.50, o.Items[0].Price)

	require.Len(t, repo.notifications, 1)
	n := repo.notifications[0]
	assert.Equal(t, notification.TypeOrder, n.Type)
	assert.Equal(t, "Pedido de Ana por €7.00", n.Message)
	require.NotNil(t, n.RelatedID)
	assert.Equal(t, o.ID, *n.RelatedID)

	require.Len(t, q.msgs, 2)
	assert.Equal(t, "ana@example.com", q.msgs[0].To)
	assert.Equal(t, "¡Pedido confirmado #1! - Cafe Demo", q.msgs[0].Subject)
	assert.Contains(t, q.msgs[0].Body, "Cappuccino x2 - €7.00")
	assert.Empty(t, q.msgs[1].To)
}

func TestCreate_TotalIsExactDecimal(t *testing.T) {
	svc := newTestService(t, newMemRepo(), nil)

	req := validRequest()
	req.Items = []CreateOrderItem{{ProductID: 4, Quantity: 3}, {ProductID: 2, Quantity: 1}}
	o, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2.55, o.TotalAmount)
}

func TestCreate_Validation(t *testing.T) {
	cases := map[string]func(r *CreateOrderRequest){
		"no items":            func(r *CreateOrderRequest) { r.Items = nil },
		"zero quantity":       func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 },
		"blank name":          func(r *CreateOrderRequest) { r.CustomerName = "   " },
		"bad email":           func(r *CreateOrderRequest) { r.CustomerEmail = "ana" },
		"unknown product":     func(r *CreateOrderRequest) { r.Items[0].ProductID = 99 },
		"unavailable product": func(r *CreateOrderRequest) { r.Items[0].ProductID = 3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newMemRepo()
			q := &recordingQueue{}
			svc := newTestService(t, repo, q)

			req := validRequest()
			mutate(&req)
			_, err := svc.Create(context.Background(), req)

			assert.True(t, apperr.Is(err, apperr.CodeValidation), "got %v", err)
			assert.Empty(t, repo.orders)
			assert.Empty(t, repo.notifications)
			assert.Empty(t, q.msgs)
		})
	}
}

func TestCreate_StoreFailureLeavesNothing(t *testing.T) {
	repo := newMemRepo()
	repo.failCreate = errors.New("connection reset")
	q := &recordingQueue{}
	svc := newTestService(t, repo, q)

	_, err := svc.Create(context.Background(), validRequest())
	assert.True(t, apperr.Is(err, apperr.CodeInternal))
	assert.Empty(t, repo.notifications)
	assert.Empty(t, q.msgs)
}

func TestCreate_MailFailureDoesNotFailOrder(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo, &recordingQueue{err: errors.New("closed")})

	o, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Contains(t, repo.orders, o.ID)
}

func TestUpdateStatus(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	err = svc.UpdateStatus(ctx, o.ID, "teleported")
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	err = svc.UpdateStatus(ctx, 404, StatusReady)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	require.NoError(t, svc.UpdateStatus(ctx, o.ID, StatusPreparing))
	assert.Equal(t, StatusPreparing, repo.orders[o.ID].Status)
	require.Len(t, repo.notifications, 2)
	assert.Equal(t, notification.TypeOrderUpdate, repo.notifications[1].Type)
	assert.Equal(t, o.ID, *repo.notifications[1].RelatedID)
}

func TestDeleteMissing(t *testing.T) {
	svc := newTestService(t, newMemRepo(), nil)
	err := svc.Delete(context.Background(), 1)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
