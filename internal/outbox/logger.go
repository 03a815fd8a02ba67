package outbox

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/MikeMC777/cafe-demo/internal/logger"
)

// wmLogger adapts logger.Logger to watermill.LoggerAdapter.
type wmLogger struct {
	log logger.Logger
}

func newWMLogger(log logger.Logger) watermill.LoggerAdapter {
	return wmLogger{log: log}
}

func (l wmLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.log.WithError(err).Error(msg, fields)
}

func (l wmLogger) Info(msg string, fields watermill.LogFields) {
	l.log.Info(msg, fields)
}

func (l wmLogger) Debug(msg string, fields watermill.LogFields) {
	l.log.Debug(msg, fields)
}

// Trace is folded into debug.
func (l wmLogger) Trace(msg string, fields watermill.LogFields) {
	l.log.Debug(msg, fields)
}

func (l wmLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return wmLogger{log: l.log.With(fields)}
}
