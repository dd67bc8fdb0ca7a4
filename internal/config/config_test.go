// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "botgw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
listen: 127.0.0.1:9000
tcp_listen: :9001
call_timeout: 30s
send_rate: 5
send_burst: 10
echo:
  enabled: true
  recall_after: 1500ms
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, ":9001", cfg.TCPListen)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout)
	assert.Equal(t, 5.0, cfg.SendRate)
	assert.Equal(t, 10, cfg.SendBurst)
	assert.True(t, cfg.Echo.Enabled)
	assert.Equal(t, 1500*time.Millisecond, cfg.Echo.RecallAfter)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// untouched keys keep their defaults
	assert.Equal(t, "/ws/cq/", cfg.WSPath)
	assert.Equal(t, 16, cfg.QueueSize)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad yaml", "listen: [", "parse"},
		{"bad duration", "call_timeout: soon", "parse"},
		{"ws path", "ws_path: ws", "ws_path"},
		{"queue size", "queue_size: -1", "queue_size"},
		{"event backlog", "event_backlog: -1", "event_backlog"},
		{"negative timeout", "call_timeout: -1s", "call_timeout"},
		{"log format", "log: {format: xml}", "log.format"},
		{"burst", "send_rate: 2\nsend_burst: 0", "send_burst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
