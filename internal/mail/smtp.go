package mail

import (
	"context"
	"fmt"
	"log"

	gomail "github.com/wneessen/go-mail"

	"paperscan/internal/config"
)

// smtpMailer implements Mailer over an SMTP relay.
type smtpMailer struct {
	cfg    config.MailConfig
	client *gomail.Client
}

// NewSMTP creates a Mailer from config. When no SMTP host is configured the
// returned mailer runs in simulation mode: sends are logged and reported as
// successful, which keeps local development working without a relay.
func NewSMTP(cfg config.MailConfig) (Mailer, error) {
	if cfg.Host == "" {
		log.Println("mailer running in simulation mode; set SMTP_HOST to send real mail")
		return &smtpMailer{cfg: cfg}, nil
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("mail from address is required")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}
	if cfg.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &smtpMailer{cfg: cfg, client: client}, nil
}

// Send delivers one plain-text message.
func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if m.client == nil {
		log.Printf("mail simulation: to=%s subject=%q", msg.To, msg.Subject)
		return nil
	}

	mm := gomail.NewMsg()
	if err := mm.FromFormat(m.cfg.FromName, m.cfg.FromEmail); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
