package mail

import (
	"context"
	"testing"

	"github.com/jhoicas/storetrack-api/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestNewMessage_Headers(t *testing.T) {
	m := newMessage("alerts@example.com", "ops@example.com", "Low Stock Alert", "- Arroz (Stock: 5)")

	assert.Equal(t, []string{"alerts@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ops@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Low Stock Alert"}, m.GetHeader("Subject"))
}

func TestSend_ContextoCancelado(t *testing.T) {
	s := NewGomailSender(config.AlertConfig{SMTPHost: "localhost", SMTPPort: 2525, EmailUser: "a", EmailPass: "b"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, "ops@example.com", "x", "y")
	assert.ErrorIs(t, err, context.Canceled)
}
