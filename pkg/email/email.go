package email

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shelterpartner/report-service/pkg/logger"
	"gopkg.in/gomail.v2"
)

// ErrMissingCredentials means the outbound mail account is not configured.
// This is a deployment problem, not a per-request one.
var ErrMissingCredentials = errors.New("email credentials are not set in environment variables")

// Mailer sends report emails over SMTP with STARTTLS.
type Mailer struct {
	from     string
	password string
	host     string
	port     int
}

// NewMailer builds a Mailer from the configured mail account. It fails up
// front when the sender address or password is missing so a misconfigured
// deployment is caught at startup rather than on the first scheduled run.
func NewMailer(address, password, host, port string) (*Mailer, error) {
	if address == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port %q: %v", port, err)
	}

	return &Mailer{
		from:     address,
		password: password,
		host:     host,
		port:     p,
	}, nil
}

// Send delivers one email with an HTML body and a single file attachment.
// The attachment is renamed so the recipient always sees a stable filename
// regardless of the per-invocation temp file name on disk.
func (m *Mailer) Send(to, subject, htmlBody, attachmentPath, attachmentName string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", "Please find attached the animal activity report.")
	msg.AddAlternative("text/html", htmlBody)
	msg.Attach(attachmentPath, gomail.Rename(attachmentName))

	dialer := gomail.NewDialer(m.host, m.port, m.from, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		logger.Log.WithError(err).WithField("to", to).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %v", err)
	}

	logger.Log.WithField("to", to).Info("Email sent successfully")
	return nil
}
