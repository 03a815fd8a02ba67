// Package reservation implements table booking with capacity-based admission
// and the admin reservation operations.
package reservation

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

const (
	minParty = 1
	maxParty = 20
)

var contactCheck = validate.MustCompile(contactSchema)

// Announcer receives committed admin notifications for fan-out.
type Announcer interface {
	Announce(ctx context.Context, n notification.Notification)
}

type Deps struct {
	Repo      Repository
	Checker   Checker
	Mail      mail.Queue
	Announcer Announcer
	Business  config.BusinessConfig
	Location  *time.Location
	Now       func() time.Time
	Log       logger.Logger
}

type Service struct {
	repo      Repository
	checker   Checker
	mail      mail.Queue
	announcer Announcer
	biz       config.BusinessConfig
	loc       *time.Location
	now       func() time.Time
	log       logger.Logger
}

func NewService(d Deps) *Service {
	if d.Checker.Capacity == 0 {
		d.Checker = NewChecker()
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{
		repo:      d.Repo,
		checker:   d.Checker,
		mail:      d.Mail,
		announcer: d.Announcer,
		biz:       d.Business,
		loc:       d.Location,
		now:       d.Now,
		log:       d.Log.With(map[string]interface{}{"component": "reservations"}),
	}
}

// Create validates req, admits it against the capacity window and persists it
// with its admin notification. Emails are queued after commit.
func (s *Service) Create(ctx context.Context, req CreateReservationRequest) (*Reservation, error) {
	res, err := s.build(req)
	if err != nil {
		metrics.IntakeOutcomes.WithLabelValues("reservation", "rejected").Inc()
		return nil, err
	}

	n := &notification.Notification{
		Type:    notification.TypeReservation,
		Title:   "Nueva reserva recibida",
		Message: fmt.Sprintf("%s para %d personas el %s", res.CustomerName, res.PartySize, res.Date),
	}
	admit := func(ctx context.Context, c SlotCounter) error {
		return s.checker.Admit(ctx, c, res.Date, res.Time)
	}
	if err := s.repo.Create(ctx, res, n, admit); err != nil {
		if apperr.Is(err, apperr.CodeConflict) {
			metrics.IntakeOutcomes.WithLabelValues("reservation", "conflict").Inc()
			s.log.Info("reservation refused, slot full", map[string]interface{}{"date": res.Date, "time": res.Time})
			return nil, err
		}
		metrics.IntakeOutcomes.WithLabelValues("reservation", "failed").Inc()
		s.log.WithError(err).Error("persist reservation failed", map[string]interface{}{"date": res.Date, "time": res.Time})
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.Internal(err)
	}
	metrics.IntakeOutcomes.WithLabelValues("reservation", "created").Inc()
	s.log.Info("reservation created", map[string]interface{}{"reservation_id": res.ID, "date": res.Date, "time": res.Time, "party_size": res.PartySize})

	if s.announcer != nil {
		s.announcer.Announce(ctx, *n)
	}
	if s.mail != nil {
		if err := s.mail.Enqueue(ctx, customerEmail(res, s.biz), operatorEmail(res)); err != nil {
			metrics.MailDeliveries.WithLabelValues("enqueue_failed").Inc()
			s.log.WithError(err).Warn("queue reservation emails failed", map[string]interface{}{"reservation_id": res.ID})
		}
	}
	return res, nil
}

func (s *Service) build(req CreateReservationRequest) (*Reservation, error) {
	if req.PartySize < minParty || req.PartySize > maxParty {
		return nil, apperr.Validation("El tamaño del grupo debe estar entre %d y %d personas", minParty, maxParty)
	}
	if err := contactCheck.Check(req); err != nil {
		return nil, err
	}
	date, clock, err := s.checkSchedule(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	return &Reservation{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		PartySize:     req.PartySize,
		Date:          date,
		Time:          clock,
		Notes:         strings.TrimSpace(req.Notes),
		Status:        StatusPending,
	}, nil
}

// checkSchedule parses date and clock in the store location, rejects instants
// before now and returns the normalized YYYY-MM-DD and HH:MM.
func (s *Service) checkSchedule(date, clock string) (string, string, error) {
	at, err := time.ParseInLocation(dateLayout+" "+timeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), s.loc)
	if err != nil {
		return "", "", apperr.Validation("Formato de fecha/hora inválido")
	}
	if at.Before(s.now()) {
		return "", "", apperr.Validation("No se puede reservar en el pasado")
	}
	return at.Format(dateLayout), at.Format(timeLayout), nil
}

// Availability lists the slots of date with their exact-time occupancy.
func (s *Service) Availability(ctx context.Context, date string) (*Availability, error) {
	return s.checker.DaySlots(ctx, s.repo, strings.TrimSpace(date))
}

func (s *Service) Get(ctx context.Context, id int64) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return res, nil
}

// List orders by date and time, latest first, at most limit (default 200).
func (s *Service) List(ctx context.Context, limit int) ([]Reservation, error) {
	out, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if !ValidStatus(status) {
		return apperr.Validation("Estado no válido. Use uno de: %s", strings.Join(statuses, ", "))
	}
	n := &notification.Notification{
		Type:    notification.TypeReservationUpdate,
		Title:   "Reserva actualizada",
		Message: fmt.Sprintf("Estado de la reserva #%d actualizado a '%s'", id, status),
	}
	if err := s.repo.UpdateStatus(ctx, id, status, n); err != nil {
		return mapErr(err)
	}
	s.log.Info("reservation status changed", map[string]interface{}{"reservation_id": id, "status": status})
	if s.announcer != nil {
		s.announcer.Announce(ctx, *n)
	}
	return nil
}

// Update applies the non-nil fields of req. Capacity is not re-checked so the
// operator can override it.
func (s *Service) Update(ctx context.Context, id int64, req UpdateReservationRequest) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}

	if req.CustomerName != nil {
		res.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerEmail != nil {
		res.CustomerEmail = strings.TrimSpace(*req.CustomerEmail)
	}
	if req.CustomerPhone != nil {
		res.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.PartySize != nil {
		if *req.PartySize < minParty || *req.PartySize > maxParty {
			return nil, apperr.Validation("El tamaño del grupo debe estar entre %d y %d personas", minParty, maxParty)
		}
		res.PartySize = *req.PartySize
	}
	if req.Notes != nil {
		res.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, apperr.Validation("Estado no válido. Use uno de: %s", strings.Join(statuses, ", "))
		}
		res.Status = *req.Status
	}
	if req.Date != nil || req.Time != nil {
		date, clock := res.Date, res.Time
		if req.Date != nil {
			date = *req.Date
		}
		if req.Time != nil {
			clock = *req.Time
		}
		if res.Date, res.Time, err = s.checkSchedule(date, clock); err != nil {
			return nil, err
		}
	}
	if err := contactCheck.Check(CreateReservationRequest{
		CustomerName:  res.CustomerName,
		CustomerEmail: res.CustomerEmail,
		CustomerPhone: res.CustomerPhone,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, mapErr(err)
	}
	return res, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	st, err := s.repo.Stats(ctx, s.now().In(s.loc).Format(dateLayout))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return st, nil
}

func mapErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Reserva no encontrada")
	}
	return apperr.Internal(err)
}
