package mail

import (
	"context"
	"fmt"

	"github.com/jhoicas/storetrack-api/internal/application/ports"
	"github.com/jhoicas/storetrack-api/pkg/config"
	"gopkg.in/gomail.v2"
)

var _ ports.Mailer = (*GomailSender)(nil)

// GomailSender envía correos de texto plano por SMTP autenticado.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el sender con las credenciales del aviso de bajo stock.
func NewGomailSender(cfg config.AlertConfig) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass),
		from:   cfg.EmailUser,
	}
}

// Send abre la conexión SMTP, envía y cierra. gomail no admite cancelación a mitad de envío.
func (s *GomailSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(newMessage(s.from, to, subject, body)); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", to, err)
	}
	return nil
}

func newMessage(from, to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}
