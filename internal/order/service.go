// Package order implements order intake and the admin order operations.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/config"
	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/mail"
	"github.com/MikeMC777/cafe-demo/internal/metrics"
	"github.com/MikeMC777/cafe-demo/internal/notification"
	"github.com/MikeMC777/cafe-demo/internal/validate"
)

var createSchema = validate.MustCompile(createOrderSchema)

type Service struct {
	repo      Repository
	products  ProductLookup
	mail      mail.Queue
	announcer Announcer
	biz       config.BusinessConfig
	now       func() time.Time
	log       logger.Logger
}

type Deps struct {
	Repo      Repository
	Products  ProductLookup
	Mail      mail.Queue
	Announcer Announcer
	Business  config.BusinessConfig
	Now       func() time.Time
	Log       logger.Logger
}

func NewService(d Deps) *Service {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{
		repo:      d.Repo,
		products:  d.Products,
		mail:      d.Mail,
		announcer: d.Announcer,
		biz:       d.Business,
		now:       d.Now,
		log:       d.Log.With(map[string]interface{}{"component": "orders"}),
	}
}

// Create validates req, prices it from the catalog, and persists the order
// together with its admin notification. Emails are queued after commit.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	o, err := s.build(ctx, req)
	if err != nil {
		s.outcome(err)
		return nil, err
	}

	n := &notification.Notification{
		Type:    notification.TypeOrder,
		Title:   "Nuevo pedido recibido",
		Message: fmt.Sprintf("Pedido de %s por €%.2f", o.CustomerName, o.TotalAmount),
	}
	if err := s.repo.Create(ctx, o, n); err != nil {
		metrics.IntakeOutcomes.WithLabelValues("order", "failed").Inc()
		s.log.WithError(err).Error("persist order failed", map[string]interface{}{"customer_email": o.CustomerEmail})
		return nil, apperr.Internal(err)
	}
	metrics.IntakeOutcomes.WithLabelValues("order", "created").Inc()
	s.log.Info("order created", map[string]interface{}{"order_id": o.ID, "total": o.TotalAmount, "items": len(o.Items)})

	if s.announcer != nil {
		s.announcer.Announce(ctx, *n)
	}
	s.sendEmails(ctx, o)
	return o, nil
}

func (s *Service) build(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if err := createSchema.Check(req); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		p, err := s.products.Lookup(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		price := decimal.NewFromFloat(p.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		var notes *string
		if n := strings.TrimSpace(line.Notes); n != "" {
			notes = &n
		}
		items = append(items, Item{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			Price:       p.Price,
			Notes:       notes,
		})
	}

	return &Order{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Items:         items,
		TotalAmount:   total.Round(2).InexactFloat64(),
		Notes:         strings.TrimSpace(req.Notes),
		Status:        StatusPending,
	}, nil
}

func (s *Service) outcome(err error) {
	switch apperr.CodeOf(err) {
	case apperr.CodeValidation:
		metrics.IntakeOutcomes.WithLabelValues("order", "rejected").Inc()
	default:
		metrics.IntakeOutcomes.WithLabelValues("order", "failed").Inc()
	}
}

func (s *Service) sendEmails(ctx context.Context, o *Order) {
	if s.mail == nil {
		return
	}
	at := s.now()
	if err := s.mail.Enqueue(ctx, customerEmail(o, s.biz, at), operatorEmail(o, at)); err != nil {
		metrics.MailDeliveries.WithLabelValues("enqueue_failed").Inc()
		s.log.WithError(err).Warn("queue order emails failed", map[string]interface{}{"order_id": o.ID})
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return o, nil
}

// List returns the newest orders first, at most limit (default 100).
func (s *Service) List(ctx context.Context, limit int) ([]Order, error) {
	out, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if !ValidStatus(status) {
		return apperr.Validation("Estado de pedido inválido: %q", status)
	}
	n := &notification.Notification{
		Type:    notification.TypeOrderUpdate,
		Title:   "Pedido actualizado",
		Message: fmt.Sprintf("Estado del pedido #%d actualizado a '%s'", id, status),
	}
	if err := s.repo.UpdateStatus(ctx, id, status, n); err != nil {
		return mapErr(err)
	}
	s.log.Info("order status changed", map[string]interface{}{"order_id": id, "status": status})
	if s.announcer != nil {
		s.announcer.Announce(ctx, *n)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return st, nil
}

func mapErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Pedido no encontrado")
	}
	return apperr.Internal(err)
}
