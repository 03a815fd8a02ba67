package notification

import (
	"context"
	"errors"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/logger"
)

// Announcer pushes a committed notification to an external channel.
type Announcer interface {
	Announce(ctx context.Context, n Notification) error
}

type Service struct {
	repo      Repository
	announcer Announcer
	log       logger.Logger
}

// NewService builds the inbox service. announcer may be nil.
func NewService(repo Repository, announcer Announcer, log logger.Logger) *Service {
	return &Service{repo: repo, announcer: announcer, log: log.With(map[string]interface{}{"component": "notifications"})}
}

// Append stores a notification outside of any producer transaction and announces it.
func (s *Service) Append(ctx context.Context, typ, title, message string, relatedID *int64) (*Notification, error) {
	n := &Notification{Type: typ, Title: title, Message: message, RelatedID: relatedID}
	if err := s.repo.Append(ctx, n); err != nil {
		return nil, apperr.Internal(err)
	}
	s.Announce(ctx, *n)
	return n, nil
}

// Announce is best-effort: failures are logged and dropped.
func (s *Service) Announce(ctx context.Context, n Notification) {
	if s.announcer == nil {
		return
	}
	if err := s.announcer.Announce(ctx, n); err != nil {
		s.log.WithError(err).Warn("announce notification failed", map[string]interface{}{
			"notification_id": n.ID,
			"type":            n.Type,
		})
	}
}

func (s *Service) List(ctx context.Context, limit int) ([]Notification, error) {
	out, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) Unread(ctx context.Context) (*UnreadSummary, error) {
	byType, err := s.repo.UnreadByType(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	total := 0
	for _, n := range byType {
		total += n
	}
	return &UnreadSummary{TotalUnread: total, ByType: byType}, nil
}

func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return mapErr(s.repo.MarkRead(ctx, id))
}

func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return mapErr(s.repo.Delete(ctx, id))
}

func (s *Service) ClearAll(ctx context.Context) (int64, error) {
	n, err := s.repo.ClearAll(ctx)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("Notificación no encontrada")
	default:
		return apperr.Internal(err)
	}
}
