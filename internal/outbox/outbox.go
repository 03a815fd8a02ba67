// Package outbox delivers emails off the request path: producers publish to an
// in-process watermill channel and a router handler sends them with retry.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/mail"
	"github.com/MikeMC777/cafe-demo/internal/metrics"
)

const mailTopic = "mail.outbound"

type Config struct {
	// OperatorInbox receives messages published without a recipient.
	OperatorInbox   string
	MaxRetries      int
	InitialInterval time.Duration
	SendTimeout     time.Duration
}

type Outbox struct {
	pubSub *gochannel.GoChannel
	router *message.Router
	sender mail.Sender
	cfg    Config
	log    logger.Logger
}

func New(sender mail.Sender, cfg Config, log logger.Logger) (*Outbox, error) {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 30 * time.Second
	}
	log = log.With(map[string]interface{}{"component": "outbox"})
	wl := newWMLogger(log)

	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, wl)
	router, err := message.NewRouter(message.RouterConfig{}, wl)
	if err != nil {
		return nil, fmt.Errorf("new router: %w", err)
	}

	o := &Outbox{pubSub: pubSub, router: router, sender: sender, cfg: cfg, log: log}

	// Outermost first: a message that exhausted its retries is dropped rather
	// than nacked back into the channel forever.
	router.AddMiddleware(
		o.dropExhausted,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      cfg.MaxRetries,
			InitialInterval: cfg.InitialInterval,
			MaxInterval:     10 * cfg.InitialInterval,
			Multiplier:      2,
			Logger:          wl,
		}.Middleware,
	)
	router.AddNoPublisherHandler("send_mail", mailTopic, pubSub, o.handle)
	return o, nil
}

// Enqueue publishes msgs for delivery. It never waits for the send.
func (o *Outbox) Enqueue(ctx context.Context, msgs ...mail.Message) error {
	out := make([]*message.Message, 0, len(msgs))
	for _, m := range msgs {
		payload, err := json.Marshal(m)
		if err != nil {
			return err
		}
		out = append(out, message.NewMessage(uuid.New().String(), payload))
	}
	return o.pubSub.Publish(mailTopic, out...)
}

// Run blocks until ctx is cancelled or Close is called.
func (o *Outbox) Run(ctx context.Context) error {
	return o.router.Run(ctx)
}

// Running is closed once the handler is subscribed.
func (o *Outbox) Running() chan struct{} {
	return o.router.Running()
}

func (o *Outbox) Close() error {
	if err := o.router.Close(); err != nil {
		return err
	}
	return o.pubSub.Close()
}

func (o *Outbox) handle(msg *message.Message) error {
	var m mail.Message
	if err := json.Unmarshal(msg.Payload, &m); err != nil {
		o.log.WithError(err).Error("discarding malformed mail message", map[string]interface{}{"message_uuid": msg.UUID})
		return nil
	}
	if m.To == "" {
		m.To = o.cfg.OperatorInbox
	}

	ctx, cancel := context.WithTimeout(msg.Context(), o.cfg.SendTimeout)
	defer cancel()
	if err := o.sender.Send(ctx, m); err != nil {
		metrics.MailDeliveries.WithLabelValues("retry").Inc()
		return err
	}
	metrics.MailDeliveries.WithLabelValues("sent").Inc()
	o.log.Debug("email sent", map[string]interface{}{"to": m.To, "subject": m.Subject})
	return nil
}

func (o *Outbox) dropExhausted(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			metrics.MailDeliveries.WithLabelValues("failed").Inc()
			o.log.WithError(err).Error("email delivery failed, dropping", map[string]interface{}{"message_uuid": msg.UUID})
			return nil, nil
		}
		return out, nil
	}
}
