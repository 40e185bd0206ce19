package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers the transactional emails the auth flows depend on.
// Implementations are best-effort collaborators: callers on the register and
// verify paths log failures instead of surfacing them.
type Mailer interface {
	SendVerificationOTP(to, firstName, code string) error
	SendWelcome(to, firstName string) error
	SendPasswordReset(to, firstName, link string) error
}

// SMTPMailer sends mail through an SMTP relay using gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the given SMTP relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendVerificationOTP emails the verification code to a freshly registered user.
func (m *SMTPMailer) SendVerificationOTP(to, firstName, code string) error {
	body := fmt.Sprintf(otpBodyTemplate, firstName, code)
	return m.send(to, "Verify your email", body)
}

// SendWelcome emails the post-verification welcome notification.
func (m *SMTPMailer) SendWelcome(to, firstName string) error {
	body := fmt.Sprintf(welcomeBodyTemplate, firstName)
	return m.send(to, "Welcome to Expense Tracker", body)
}

// SendPasswordReset emails a single-use password reset link.
func (m *SMTPMailer) SendPasswordReset(to, firstName, link string) error {
	body := fmt.Sprintf(resetBodyTemplate, firstName, link)
	return m.send(to, "Password Reset", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
