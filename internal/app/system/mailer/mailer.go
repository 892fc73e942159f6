// internal/app/system/mailer/mailer.go
package mailer

import (
	"bytes"
	"io"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Email is one outbound message.
type Email struct {
	To          string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

// Attachment is an in-memory file attached to an Email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer sends email over SMTP.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	log      *zap.Logger
}

// New creates a Mailer from the SMTP configuration.
func New(host string, port int, user, pass, from, fromName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, user, pass),
		from:     from,
		fromName: fromName,
		log:      logger,
	}
}

// Send delivers one email. Each call dials the SMTP server; the
// notification fan-out keeps its parallelism bounded so this stays
// within provider rate limits.
func (m *Mailer) Send(e Email) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", e.Subject)

	if e.TextBody != "" {
		msg.SetBody("text/plain", e.TextBody)
		if e.HTMLBody != "" {
			msg.AddAlternative("text/html", e.HTMLBody)
		}
	} else {
		msg.SetBody("text/html", e.HTMLBody)
	}

	for _, att := range e.Attachments {
		data := att.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(data))
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		msg.Attach(att.Filename, settings...)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("email send failed",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
			zap.Error(err))
		return err
	}

	m.log.Debug("email sent",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.Int("attachments", len(e.Attachments)))
	return nil
}
