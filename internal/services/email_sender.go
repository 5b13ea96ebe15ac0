package services

import (
	"context"
	"log/slog"
)

type EmailSender interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// LogSender writes outgoing mail to the log instead of delivering it.
type LogSender struct {
	Log *slog.Logger
}

func (s *LogSender) Send(_ context.Context, to string, subject string, body string) error {
	s.Log.Info("email not delivered, log transport",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_len", len(body)),
	)
	return nil
}
