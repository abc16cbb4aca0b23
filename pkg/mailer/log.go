package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of sending them. Used in
// development when no transport is configured.
type LogSender struct {
	log  *zap.Logger
	from From
}

func NewLogSender(log *zap.Logger, from From) *LogSender {
	return &LogSender{log: log.Named("mailer"), from: from}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("email",
		zap.String("from", s.from.Address),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
