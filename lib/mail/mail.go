package mail

import (
	"context"
	"fmt"
	"log"
	"time"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/types"
	gomail "github.com/wneessen/go-mail"
)

// Settings carries the SMTP account used for digest delivery. Gmail app
// passwords work with plain auth once STARTTLS is up.
type Settings struct {
	Host      string
	Port      int
	Address   string
	Password  string
	Recipient string
}

// Subject builds the digest subject line for a run date.
func Subject(topic string, when time.Time) string {
	return fmt.Sprintf("🎯 Your %s Digest - %s", topic, when.Format("Jan 02, 2006"))
}

// BuildMessage assembles the multipart/alternative digest email, plain
// text first so older clients fall back cleanly.
func BuildMessage(settings Settings, topic string, digest types.Digest) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(settings.Address); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(settings.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(Subject(topic, digest.GeneratedAt))
	msg.SetBodyString(gomail.TypeTextPlain, digest.PlainText)
	msg.AddAlternativeString(gomail.TypeTextHTML, digest.HTML)
	return msg, nil
}

// Sender delivers digests over authenticated SMTP, requiring STARTTLS
// before credentials go over the wire.
type Sender struct {
	settings Settings
	topic    string
}

func NewSender(settings Settings, topic string) *Sender {
	return &Sender{settings: settings, topic: topic}
}

func (s *Sender) Send(ctx context.Context, digest types.Digest) error {
	msg, err := BuildMessage(s.settings, s.topic, digest)
	if err != nil {
		return err
	}
	client, err := gomail.NewClient(s.settings.Host,
		gomail.WithPort(s.settings.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.settings.Address),
		gomail.WithPassword(s.settings.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client setup failed: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	log.Printf("Sent digest to %s via %s:%d", s.settings.Recipient, s.settings.Host, s.settings.Port)
	return nil
}
