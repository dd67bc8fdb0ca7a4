// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads the gateway configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the gateway configuration.
type Config struct {
	Listen            string        `yaml:"listen"`
	WSPath            string        `yaml:"ws_path"`
	TCPListen         string        `yaml:"tcp_listen"`
	GRPCListen        string        `yaml:"grpc_listen"`
	QueueSize         int           `yaml:"queue_size"`
	MaxInflightEvents int64         `yaml:"max_inflight_events"`
	EventBacklog      int           `yaml:"event_backlog"`
	CallTimeout       time.Duration `yaml:"call_timeout"`
	SendRate          float64       `yaml:"send_rate"`
	SendBurst         int           `yaml:"send_burst"`
	Echo              Echo          `yaml:"echo"`
	Log               Log           `yaml:"log"`
}

// Echo configures the demo handler that repeats private messages back.
type Echo struct {
	Enabled     bool          `yaml:"enabled"`
	RecallAfter time.Duration `yaml:"recall_after"`
}

type Log struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:            ":8081",
		WSPath:            "/ws/cq/",
		QueueSize:         16,
		MaxInflightEvents: 256,
		EventBacklog:      1024,
		SendBurst:         1,
		Echo: Echo{
			RecallAfter: 3 * time.Second,
		},
		Log: Log{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Listen == "" {
		errs = append(errs, errors.New("listen is required"))
	}
	if !strings.HasPrefix(c.WSPath, "/") {
		errs = append(errs, fmt.Errorf("ws_path %q must start with /", c.WSPath))
	}
	if c.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("queue_size must be positive, got %d", c.QueueSize))
	}
	if c.MaxInflightEvents <= 0 {
		errs = append(errs, fmt.Errorf("max_inflight_events must be positive, got %d", c.MaxInflightEvents))
	}
	if c.EventBacklog < 0 {
		errs = append(errs, fmt.Errorf("event_backlog must not be negative, got %d", c.EventBacklog))
	}
	if c.CallTimeout < 0 {
		errs = append(errs, fmt.Errorf("call_timeout must not be negative, got %s", c.CallTimeout))
	}
	if c.SendRate < 0 {
		errs = append(errs, fmt.Errorf("send_rate must not be negative, got %g", c.SendRate))
	}
	if c.SendRate > 0 && c.SendBurst <= 0 {
		errs = append(errs, errors.New("send_burst must be positive when send_rate is set"))
	}
	if c.Echo.RecallAfter < 0 {
		errs = append(errs, fmt.Errorf("echo.recall_after must not be negative, got %s", c.Echo.RecallAfter))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
