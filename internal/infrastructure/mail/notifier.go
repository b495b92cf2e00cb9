// Package mail delivers account notifications over SMTP.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

const (
	defaultTimeout      = 10 * time.Second
	verificationSubject = "Email Verification"
	verificationBody    = "Hi %s,\n\nYour registration was successful. Please verify your email address.\n"
)

// Config holds the SMTP account used for outgoing mail.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPNotifier implements ports.Notifier over an authenticated SMTP session.
type SMTPNotifier struct {
	cfg Config
}

func NewSMTPNotifier(cfg Config) *SMTPNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &SMTPNotifier{cfg: cfg}
}

// SendVerification mails the registration confirmation to email. The whole
// exchange is bounded by the configured timeout.
func (n *SMTPNotifier) SendVerification(ctx context.Context, email, name string) error {
	msg, err := verificationMessage(n.cfg.From, email, name)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(n.cfg.Host,
		gomail.WithPort(n.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.cfg.Username),
		gomail.WithPassword(n.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(n.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	if err := client.DialAndSendWithContext(sendCtx, msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

func verificationMessage(from, to, name string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(verificationSubject)
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(verificationBody, name))
	return msg, nil
}

// LogNotifier stands in for SMTP when no mail account is configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendVerification(_ context.Context, email, _ string) error {
	n.log.Info().Str("to", email).Msg("mail disabled, verification mail skipped")
	return nil
}
