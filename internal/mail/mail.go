// Package mail sends plain-text emails through a configurable transport.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/MikeMC777/cafe-demo/internal/logger"
)

// Message is one outbound email. An empty To addresses the operator inbox.
type Message struct {
	To      string `json:"to,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers a message synchronously.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Queue accepts messages for asynchronous delivery.
type Queue interface {
	Enqueue(ctx context.Context, msgs ...Message) error
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	log logger.Logger
}

func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{log: log.With(map[string]interface{}{"component": "mail"})}
}

func (s *LogSender) Send(ctx context.Context, m Message) error {
	s.log.Info("email (log transport)", map[string]interface{}{
		"to":      m.To,
		"subject": m.Subject,
		"bytes":   len(m.Body),
	})
	return nil
}

// Options selects and configures a transport.
type Options struct {
	Provider  string
	From      string
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	SESRegion string
}

// NewSender builds the transport named by opts.Provider.
func NewSender(ctx context.Context, opts Options, log logger.Logger) (Sender, error) {
	switch strings.ToLower(opts.Provider) {
	case "", "log":
		return NewLogSender(log), nil
	case "smtp":
		if opts.SMTPUser == "" || opts.SMTPPass == "" {
			log.Warn("SMTP credentials missing, falling back to log transport", nil)
			return NewLogSender(log), nil
		}
		return NewSMTPSender(opts.SMTPHost, opts.SMTPPort, opts.SMTPUser, opts.SMTPPass, opts.From), nil
	case "ses":
		return NewSESSenderFromRegion(ctx, opts.SESRegion, opts.From)
	default:
		return nil, fmt.Errorf("unknown mail provider %q", opts.Provider)
	}
}
