package report

import (
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	gomail "gopkg.in/gomail.v2"
)

// 📮 SMTPSettings is the mail delivery endpoint.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
}

// 📧 Envelope addresses one delivery.
type Envelope struct {
	From string
	To   []string
}

// 🚀 Send renders the report and mails it as an HTML message. One attempt,
// no retry: an unreachable mail server is an error for the caller to report,
// not a transient condition to paper over.
func Send(ctx context.Context, smtp SMTPSettings, env Envelope, r Report) error {
	logger := zerolog.Ctx(ctx)

	if smtp.Host == "" {
		return errors.New("smtp host is required")
	}
	if env.From == "" || len(env.To) == 0 {
		return errors.New("sender and at least one recipient are required")
	}

	var body bytes.Buffer
	if err := Render(&body, r); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", env.From)
	msg.SetHeader("To", env.To...)
	msg.SetHeader("Subject", r.Title)
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return errors.Errorf("sending report via %s: %w", smtp.Host, err)
	}

	logger.Info().
		Str("host", smtp.Host).
		Strs("to", env.To).
		Msg("report sent")

	return nil
}
