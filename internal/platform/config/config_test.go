package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfdesk/shelfdesk_backend/internal/platform/config"
)

func TestLoadConfig_SingleTerminalDefaultsOff(t *testing.T) {
	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.False(t, cfg.SingleTerminal)
}

func TestLoadConfig_SingleTerminalOptIn(t *testing.T) {
	t.Setenv("SINGLE_TERMINAL", "true")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.SingleTerminal)
}
