package notifiers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	mail "github.com/go-mail/mail/v2"

	"notify-center-api/models"
)

func smtpConfig() *models.NotifierConfig {
	cfg := models.NewNotifierConfig("Mail server", models.NotifierTypeSMTP)
	cfg.Host = "smtp.example.com"
	cfg.Port = 587
	cfg.SenderMail = "noreply@example.com"
	return cfg
}

func user(name, email string) models.User {
	return models.User{UserName: name, Email: email}
}

func TestSMTPSendCountsPerRecipient(t *testing.T) {
	var mu sync.Mutex
	var sentTo []string

	n := NewSMTPNotifier()
	n.send = func(cfg *models.NotifierConfig, m *mail.Message) error {
		to := m.GetHeader("To")[0]
		if strings.Contains(to, "broken") {
			return errors.New("connection reset")
		}
		mu.Lock()
		sentTo = append(sentTo, to)
		mu.Unlock()
		return nil
	}

	recipients := []models.User{
		user("alice", "alice@example.com"),
		user("broken", "broken@example.com"),
		user("bob", "bob@example.com"),
	}

	success, failed := n.Send(context.Background(), smtpConfig(), &Message{Title: "t", Body: "b"}, recipients)
	if success != 2 || failed != 1 {
		t.Fatalf("unexpected counts: %d/%d", success, failed)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(sentTo) != 2 {
		t.Fatalf("unexpected delivery count: %v", sentTo)
	}
}

func TestSMTPSendEmptyEmailCountsFailed(t *testing.T) {
	n := NewSMTPNotifier()
	calls := 0
	n.send = func(*models.NotifierConfig, *mail.Message) error {
		calls++
		return nil
	}

	recipients := []models.User{
		user("no-mail", ""),
		user("bad-mail", "not-an-address"),
		user("ok", "ok@example.com"),
	}

	success, failed := n.Send(context.Background(), smtpConfig(), &Message{Title: "t", Body: "b"}, recipients)
	if success != 1 || failed != 2 {
		t.Fatalf("unexpected counts: %d/%d", success, failed)
	}
	if calls != 1 {
		t.Fatalf("dialer invoked for unusable addresses: %d calls", calls)
	}
}

func TestSMTPSendPanicCountsFailed(t *testing.T) {
	n := NewSMTPNotifier()
	n.send = func(_ *models.NotifierConfig, m *mail.Message) error {
		if strings.Contains(m.GetHeader("To")[0], "boom") {
			panic("dialer blew up")
		}
		return nil
	}

	recipients := []models.User{
		user("boom", "boom@example.com"),
		user("ok", "ok@example.com"),
	}

	success, failed := n.Send(context.Background(), smtpConfig(), &Message{Title: "t", Body: "b"}, recipients)
	if success != 1 || failed != 1 {
		t.Fatalf("unexpected counts: %d/%d", success, failed)
	}
}

func TestSMTPSendMisconfiguredFailsAll(t *testing.T) {
	n := NewSMTPNotifier()
	n.send = func(*models.NotifierConfig, *mail.Message) error {
		t.Fatal("send must not be called for a misconfigured channel")
		return nil
	}

	cfg := models.NewNotifierConfig("broken", models.NotifierTypeSMTP) // no host, no sender
	recipients := []models.User{user("a", "a@example.com"), user("b", "b@example.com")}

	success, failed := n.Send(context.Background(), cfg, &Message{Title: "t", Body: "b"}, recipients)
	if success != 0 || failed != len(recipients) {
		t.Fatalf("unexpected counts: %d/%d", success, failed)
	}
}

func TestSMTPMessageHeaders(t *testing.T) {
	n := NewSMTPNotifier()
	var captured *mail.Message
	n.send = func(_ *models.NotifierConfig, m *mail.Message) error {
		captured = m
		return nil
	}

	cfg := smtpConfig()
	cfg.SenderAlias = "Notify Center"
	msg := &Message{Title: "Subject line", Body: "<b>hi</b>", HTML: true}

	success, failed := n.Send(context.Background(), cfg, msg, []models.User{user("alice", "alice@example.com")})
	if success != 1 || failed != 0 {
		t.Fatalf("unexpected counts: %d/%d", success, failed)
	}
	if captured == nil {
		t.Fatal("no message captured")
	}
	if got := captured.GetHeader("Subject"); len(got) != 1 || got[0] != "Subject line" {
		t.Errorf("unexpected subject: %v", got)
	}
	if got := captured.GetHeader("From"); len(got) != 1 || !strings.Contains(got[0], "Notify Center") {
		t.Errorf("sender alias missing: %v", got)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	smtp := NewSMTPNotifier()
	r.Register(smtp, SMTPIcon)

	if _, ok := r.Get("carrier-pigeon"); ok {
		t.Error("unregistered type resolved")
	}
	n, ok := r.Get(models.NotifierTypeSMTP)
	if !ok || n.Name() != "SMTP Notifier" {
		t.Fatalf("smtp lookup failed: %v", ok)
	}

	infos := r.List()
	if len(infos) != 1 || infos[0].Type != models.NotifierTypeSMTP || infos[0].Icon != SMTPIcon {
		t.Errorf("unexpected listing: %+v", infos)
	}
}
