// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/botrpc/internal/config"
)

func TestJSONConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(config.Log{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("bot connected")
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bot connected", entry["msg"])
	assert.Equal(t, "info", entry["level"])
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "botgw.log")
	var buf bytes.Buffer
	log, err := newLogger(config.Log{Level: "debug", Format: "console", File: path, MaxSizeMB: 1}, &buf)
	require.NoError(t, err)

	log.Debug("dropping unmatched response")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dropping unmatched response")
	assert.Contains(t, buf.String(), "dropping unmatched response")
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(config.Log{Level: "loud", Format: "console"})
	require.Error(t, err)

	_, err = New(config.Log{Level: "info", Format: "xml"})
	require.Error(t, err)
}
