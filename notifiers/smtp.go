package notifiers

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	mail "github.com/go-mail/mail/v2"

	"notify-center-api/models"
	"notify-center-api/utils"
)

// SMTPIcon is the display icon of the SMTP channel.
const SMTPIcon = `<i class="fas fa-at"></i>`

// SMTPNotifier delivers notifications as email. Every recipient gets an
// independent send attempt; one failing recipient never aborts the others.
type SMTPNotifier struct {
	// send delivers one composed message. Tests replace it.
	send func(cfg *models.NotifierConfig, m *mail.Message) error
}

func NewSMTPNotifier() *SMTPNotifier {
	return &SMTPNotifier{send: dialAndSend}
}

func (n *SMTPNotifier) Type() string { return models.NotifierTypeSMTP }

func (n *SMTPNotifier) Name() string { return "SMTP Notifier" }

// Send fans out the message to all recipients in parallel and reports the
// per-recipient outcome counts. A recipient without a usable email address
// counts as failed. A configuration that cannot produce a client at all
// fails every recipient.
func (n *SMTPNotifier) Send(ctx context.Context, cfg *models.NotifierConfig, msg *Message, recipients []models.User) (int, int) {
	if err := validateConfig(cfg); err != nil {
		log.Printf("SMTP notifier %s cannot start: %v", cfg.DisplayName, err)
		return 0, len(recipients)
	}

	var success, failed int64
	var wg sync.WaitGroup
	for _, recipient := range recipients {
		wg.Add(1)
		go func(recipient models.User) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Panic sending mail to %s via %s: %v", recipient.UserName, cfg.DisplayName, r)
					atomic.AddInt64(&failed, 1)
				}
			}()
			if err := n.sendOne(cfg, msg, &recipient); err != nil {
				log.Printf("Failed to send mail to %s via %s: %v", recipient.UserName, cfg.DisplayName, err)
				atomic.AddInt64(&failed, 1)
				return
			}
			atomic.AddInt64(&success, 1)
		}(recipient)
	}
	wg.Wait()

	return int(success), int(failed)
}

func (n *SMTPNotifier) sendOne(cfg *models.NotifierConfig, msg *Message, recipient *models.User) error {
	if !utils.ValidateEmail(recipient.Email) {
		return fmt.Errorf("user %s has no usable email address", recipient.UserName)
	}

	m := mail.NewMessage()
	if cfg.SenderAlias != "" {
		m.SetAddressHeader("From", cfg.SenderMail, cfg.SenderAlias)
	} else {
		m.SetHeader("From", cfg.SenderMail)
	}
	m.SetHeader("To", recipient.Email)
	m.SetHeader("Subject", msg.Title)
	if msg.HTML {
		m.SetBody("text/html", msg.Body)
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	return n.send(cfg, m)
}

func validateConfig(cfg *models.NotifierConfig) error {
	if cfg.Host == "" || cfg.SenderMail == "" {
		return fmt.Errorf("smtp not configured (host/sender_mail)")
	}
	return nil
}

func dialAndSend(cfg *models.NotifierConfig, m *mail.Message) error {
	port := cfg.Port
	if port == 0 {
		port = 587
	}

	d := mail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password)
	d.SSL = cfg.EnableSSL
	if !cfg.EnableSSL {
		d.StartTLSPolicy = mail.MandatoryStartTLS
	}
	d.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
	}

	return d.DialAndSend(m)
}

// SendTestMail sends a probe message with the given configuration, used by
// the notifier test endpoint.
func (n *SMTPNotifier) SendTestMail(cfg *models.NotifierConfig, to string) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	probe := ApplyGlobalTemplate(&Message{
		Title: "SMTP Test",
		Body:  "<p>Hi there,</p><p>this is your Notify Center.</p><p>Looks like the SMTP configuration is working.</p>",
		Tags:  []string{"Test"},
	}, "")

	recipient := models.User{UserName: to, Email: to}
	return n.sendOne(cfg, probe, &recipient)
}
