package scheduler

import (
	"context"
	"testing"

	"github.com/jhoicas/storetrack-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ZonaHorariaInvalida(t *testing.T) {
	_, err := New("Marte/Olympus", logger.Nop())
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	s, err := New("Asia/Tehran", logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Register("low-stock", "0 6 * * *", func(context.Context) {}))
	assert.Equal(t, 1, s.Len())

	assert.Error(t, s.Register("roto", "cada día", func(context.Context) {}))
	assert.Equal(t, 1, s.Len())
}

func TestStartStop(t *testing.T) {
	s, err := New("UTC", logger.Nop())
	require.NoError(t, err)
	s.Start()
	s.Stop(context.Background())
}
