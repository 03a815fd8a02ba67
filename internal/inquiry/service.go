package inquiry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/config"
	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/mail"
	"github.com/MikeMC777/cafe-demo/internal/metrics"
	"github.com/MikeMC777/cafe-demo/internal/notification"
	"github.com/MikeMC777/cafe-demo/internal/validate"
)

const listLimit = 50

var (
	contactCheck     = validate.MustCompile(contactSchema)
	subscribeCheck   = validate.MustCompile(subscribeSchema)
	applicationCheck = validate.MustCompile(applicationSchema)
)

type Announcer interface {
	Announce(ctx context.Context, n notification.Notification)
}

type Deps struct {
	Repo      Repository
	Mail      mail.Queue
	Announcer Announcer
	Business  config.BusinessConfig
	Now       func() time.Time
	Log       logger.Logger
}

type Service struct {
	repo      Repository
	mail      mail.Queue
	announcer Announcer
	biz       config.BusinessConfig
	now       func() time.Time
	log       logger.Logger
}

func NewService(d Deps) *Service {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{
		repo:      d.Repo,
		mail:      d.Mail,
		announcer: d.Announcer,
		biz:       d.Business,
		now:       d.Now,
		log:       d.Log.With(map[string]interface{}{"component": "inquiry"}),
	}
}

func (s *Service) Contact(ctx context.Context, req ContactRequest) (*ContactMessage, error) {
	if err := contactCheck.Check(req); err != nil {
		return nil, err
	}
	m := &ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	n := &notification.Notification{
		Type:    notification.TypeContact,
		Title:   "Nuevo mensaje de contacto",
		Message: fmt.Sprintf("De %s: %s", m.Name, m.Subject),
	}
	if err := s.repo.CreateContact(ctx, m, n); err != nil {
		return nil, apperr.Internal(err)
	}
	s.log.Info("contact message stored", map[string]interface{}{"contact_id": m.ID})
	s.announce(ctx, n)
	s.send(ctx, "contact", contactOperatorEmail(m, s.biz, s.now()))
	return m, nil
}

func subscriberLabel(email, name string) string {
	if name != "" {
		return name
	}
	return email
}

// Subscribe adds email to the newsletter, reactivating a previous subscription.
// An active subscription is a Conflict.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscribeResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := subscribeCheck.Check(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindSubscriber(ctx, req.Email)
	switch {
	case err == nil && existing.Active:
		return nil, apperr.Conflict("Ya estás suscrito al newsletter")
	case err == nil:
		n := &notification.Notification{
			Type:    notification.TypeNewsletter,
			Title:   "Suscripción reactivada",
			Message: subscriberLabel(req.Email, req.Name) + " volvió a suscribirse",
		}
		if err := s.repo.Reactivate(ctx, req.Email, req.Name, n); err != nil {
			return nil, apperr.Internal(err)
		}
		s.log.Info("subscription reactivated", map[string]interface{}{"subscriber_id": existing.ID})
		s.announce(ctx, n)
		s.send(ctx, "newsletter", welcomeEmail(req.Email, req.Name, s.biz, s.now()))
		return &SubscribeResult{Message: "Suscripción reactivada correctamente", Reactivated: true}, nil
	case !errors.Is(err, ErrNotFound):
		return nil, apperr.Internal(err)
	}

	sub := &Subscriber{Email: req.Email, Name: req.Name}
	n := &notification.Notification{
		Type:    notification.TypeNewsletter,
		Title:   "Nueva suscripción al newsletter",
		Message: subscriberLabel(req.Email, req.Name) + " se suscribió",
	}
	if err := s.repo.CreateSubscriber(ctx, sub, n); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, apperr.Conflict("Ya estás suscrito al newsletter")
		}
		return nil, apperr.Internal(err)
	}
	s.log.Info("subscriber added", map[string]interface{}{"subscriber_id": sub.ID})
	s.announce(ctx, n)
	at := s.now()
	s.send(ctx, "newsletter",
		welcomeEmail(sub.Email, sub.Name, s.biz, at),
		subscriptionOperatorEmail(sub.Email, sub.Name, s.biz, at))
	return &SubscribeResult{Message: "Suscripción exitosa al newsletter"}, nil
}

func (s *Service) Apply(ctx context.Context, req JobApplicationRequest) (*JobApplication, error) {
	if err := applicationCheck.Check(req); err != nil {
		return nil, err
	}
	a := &JobApplication{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Position:   strings.TrimSpace(req.Position),
		Experience: strings.TrimSpace(req.Experience),
		Motivation: strings.TrimSpace(req.Motivation),
		CVFilename: strings.TrimSpace(req.CVFilename),
	}
	n := &notification.Notification{
		Type:    notification.TypeJobApplication,
		Title:   "Nueva aplicación de trabajo",
		Message: fmt.Sprintf("%s aplicó para %s", a.Name, a.Position),
	}
	if err := s.repo.CreateApplication(ctx, a, n); err != nil {
		return nil, apperr.Internal(err)
	}
	s.log.Info("job application stored", map[string]interface{}{"application_id": a.ID, "position": a.Position})
	s.announce(ctx, n)
	at := s.now()
	s.send(ctx, "job_application",
		applicationOperatorEmail(a, s.biz, at),
		applicationConfirmation(a, s.biz, at))
	return a, nil
}

func (s *Service) Contacts(ctx context.Context) ([]ContactMessage, error) {
	out, err := s.repo.ListContacts(ctx, listLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	return mapErr(s.repo.DeleteContact(ctx, id), "Mensaje no encontrado")
}

func (s *Service) Subscribers(ctx context.Context) ([]Subscriber, error) {
	out, err := s.repo.ListActiveSubscribers(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) Unsubscribe(ctx context.Context, id int64) error {
	return mapErr(s.repo.Deactivate(ctx, id), "Suscriptor no encontrado")
}

func (s *Service) Applications(ctx context.Context) ([]JobApplication, error) {
	out, err := s.repo.ListApplications(ctx, listLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) DeleteApplication(ctx context.Context, id int64) error {
	return mapErr(s.repo.DeleteApplication(ctx, id), "Aplicación no encontrada")
}

// SendNewsletter queues one personalized email per active subscriber.
func (s *Service) SendNewsletter(ctx context.Context, req NewsletterRequest) (*SendResult, error) {
	subs, err := s.repo.ListActiveSubscribers(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(subs) == 0 {
		return &SendResult{Message: "No hay suscriptores activos"}, nil
	}
	if s.mail == nil {
		return nil, apperr.Internal(errors.New("mail queue not configured"))
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Newsletter - " + s.biz.Name
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperr.Validation("El contenido del newsletter es obligatorio")
	}

	msgs := make([]mail.Message, 0, len(subs))
	for _, sub := range subs {
		msgs = append(msgs, newsletterEmail(sub, subject, content, s.biz))
	}
	if err := s.mail.Enqueue(ctx, msgs...); err != nil {
		metrics.MailDeliveries.WithLabelValues("enqueue_failed").Inc()
		return nil, apperr.Internal(err)
	}
	s.log.Info("newsletter queued", map[string]interface{}{"recipients": len(msgs)})
	return &SendResult{
		Message: fmt.Sprintf("Newsletter enviado a %d suscriptores", len(msgs)),
		Queued:  len(msgs),
		Total:   len(subs),
	}, nil
}

func (s *Service) announce(ctx context.Context, n *notification.Notification) {
	if s.announcer != nil {
		s.announcer.Announce(ctx, *n)
	}
}

func (s *Service) send(ctx context.Context, kind string, msgs ...mail.Message) {
	if s.mail == nil {
		return
	}
	if err := s.mail.Enqueue(ctx, msgs...); err != nil {
		metrics.MailDeliveries.WithLabelValues("enqueue_failed").Inc()
		s.log.WithError(err).Warn("queue emails failed", map[string]interface{}{"kind": kind})
	}
}

func mapErr(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("%s", notFound)
	}
	return apperr.Internal(err)
}
