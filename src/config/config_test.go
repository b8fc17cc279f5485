package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

const validYAML = `
name: fix-gateway
log_level: debug
host: 0.0.0.0
port: 8080
grpc_host: 0.0.0.0
grpc_port: 9090
fix:
  settings_file: sessions.cfg
  sender_comp_id: FIXSERVER
  target_comp_id: ROFX
  account: REM2989
  password: changeit
hub:
  host: 0.0.0.0
  port: 8081
  queue_size: 256
nats:
  enabled: true
  servers:
    - nats://localhost:4222
  client_id: fix-gateway
  connect_timeout: 5s
  jetstream:
    enabled: true
    stream_name: FIX_EVENTS
    subjects:
      - events.>
    max_age: 72h
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfigLoadsAndValidates(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "fix-gateway", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "REM2989", cfg.FIX.Account)
	assert.Equal(t, 256, cfg.Hub.QueueSize)
	assert.Equal(t, "/ws", cfg.HubPath())

	require.True(t, cfg.NATSEnabled())
	assert.Equal(t, 5*time.Second, cfg.NATS.ConnectTimeout)
	assert.Equal(t, 72*time.Hour, cfg.NATS.JetStream.MaxAge)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  string
		replace string
	}{
		{"privileged port", "port: 8080", "port: 80"},
		{"missing account", "account: REM2989", "account: \"\""},
		{"zero queue size", "queue_size: 256", "queue_size: 0"},
		{"missing settings file", "settings_file: sessions.cfg", "settings_file: \"\""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			broken := replaceOnce(validYAML, tc.mutate, tc.replace)
			_, err := NewConfig(writeConfig(t, broken))
			assert.Error(t, err)
		})
	}
}

func TestValidateNATSOnlyWhenEnabled(t *testing.T) {
	disabled := replaceOnce(validYAML, "enabled: true", "enabled: false")
	disabled = replaceOnce(disabled, "servers:\n    - nats://localhost:4222", "servers: []")

	cfg, err := NewConfig(writeConfig(t, disabled))
	require.NoError(t, err)
	assert.False(t, cfg.NATSEnabled())
}

func replaceOnce(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}
