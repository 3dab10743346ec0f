package ports

import "context"

// Mailer puerto de salida para el envío de correos de texto plano.
// El adaptador SMTP vive en infrastructure/mail; los tests usan un doble en memoria.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
