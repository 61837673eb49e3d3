// control/config.go
// Author: momentics <momentics@gmail.com>
//
// YAML socket configuration and a thread-safe store with reload listeners.

package control

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/momentics/hioload-udplite/api"
	"github.com/momentics/hioload-udplite/udplite"
	"gopkg.in/yaml.v3"
)

// Config describes how a tool binds and tunes its UDP-Lite socket.
type Config struct {
	Bind        string `yaml:"bind"`
	Peer        string `yaml:"peer,omitempty"`
	Nonblocking bool   `yaml:"nonblocking"`

	// Coverage values are payload byte counts, or "full" / empty.
	SendCoverage string `yaml:"send_coverage,omitempty"`
	RecvCoverage string `yaml:"recv_coverage,omitempty"`

	ReadTimeout time.Duration `yaml:"read_timeout,omitempty"`
	BufferSize  int           `yaml:"buffer_size"`
	LogLevel    string        `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Bind:       "127.0.0.1:0",
		BufferSize: 65535,
		LogLevel:   "info",
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be caught by YAML decoding.
func (c *Config) Validate() error {
	if c.Bind == "" {
		return fmt.Errorf("config: bind is required: %w", api.ErrInvalidArgument)
	}
	if c.BufferSize <= 0 || c.BufferSize > 0xffff {
		return fmt.Errorf("config: buffer_size %d: %w", c.BufferSize, api.ErrInvalidArgument)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("config: read_timeout %v: %w", c.ReadTimeout, api.ErrInvalidArgument)
	}
	if _, err := udplite.ParseCoverage(c.SendCoverage); err != nil {
		return fmt.Errorf("config: send_coverage: %w", err)
	}
	if _, err := udplite.ParseCoverage(c.RecvCoverage); err != nil {
		return fmt.Errorf("config: recv_coverage: %w", err)
	}
	return nil
}

// Coverages returns the parsed send and receive coverage.
func (c *Config) Coverages() (send, recv udplite.Coverage, err error) {
	if send, err = udplite.ParseCoverage(c.SendCoverage); err != nil {
		return
	}
	recv, err = udplite.ParseCoverage(c.RecvCoverage)
	return
}

// BindOptions translates the configuration into udplite bind options.
func (c *Config) BindOptions() ([]udplite.Option, error) {
	send, recv, err := c.Coverages()
	if err != nil {
		return nil, err
	}
	opts := []udplite.Option{
		udplite.WithSendChecksumCoverage(send),
		udplite.WithRecvChecksumCoverage(recv),
	}
	if c.Nonblocking {
		opts = append(opts, udplite.WithNonblocking())
	}
	return opts, nil
}

// ApplyCoverage pushes the configured coverage onto a live socket.
func (c *Config) ApplyCoverage(s *udplite.Socket) error {
	send, recv, err := c.Coverages()
	if err != nil {
		return err
	}
	if err := s.SetSendChecksumCoverage(send); err != nil {
		return err
	}
	return s.SetRecvChecksumCoverage(recv)
}

// ConfigStore holds the current configuration snapshot and notifies
// listeners when it is replaced.
type ConfigStore struct {
	mu        sync.RWMutex
	config    *Config
	listeners []func(*Config)
}

// NewConfigStore initializes a store with cfg, or Default when cfg is nil.
func NewConfigStore(cfg *Config) *ConfigStore {
	if cfg == nil {
		cfg = Default()
	}
	return &ConfigStore{config: cfg}
}

// Get returns a copy of the current configuration.
func (cs *ConfigStore) Get() Config {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return *cs.config
}

// Set replaces the configuration and runs the reload listeners in
// registration order.
func (cs *ConfigStore) Set(cfg *Config) {
	cs.mu.Lock()
	cs.config = cfg
	listeners := append([]func(*Config){}, cs.listeners...)
	cs.mu.Unlock()
	for _, fn := range listeners {
		fn(cfg)
	}
}

// OnReload registers a listener called after every Set.
func (cs *ConfigStore) OnReload(fn func(*Config)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
