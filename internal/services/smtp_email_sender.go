package services

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPSender struct {
	Host   string
	Port   int
	User   string
	Pass   string
	From   string
	UseTLS bool

	// dial replaces the network dial in tests.
	dial func() (gomail.SendCloser, error)
}

func (s *SMTPSender) dialer() *gomail.Dialer {
	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	if s.UseTLS {
		d.SSL = true
		d.TLSConfig = &tls.Config{ServerName: s.Host}
	}
	return d
}

func (s *SMTPSender) Send(ctx context.Context, to string, subject string, body string) error {
	const op = "services.SMTPSender.Send"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dial := s.dial
	if dial == nil {
		dial = s.dialer().Dial
	}

	sc, err := dial()
	if err != nil {
		return fmt.Errorf("%s: dial: %w", op, err)
	}
	defer sc.Close()

	if err := gomail.Send(sc, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
