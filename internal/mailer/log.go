package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes the message to the log instead of delivering it. Used in
// development when no SMTP host is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log.With(zap.String("mailer", "log"))}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info("Email (not delivered)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("html", msg.HTML),
	)
	return nil
}
