// Package config handles configuration loading, trigger parsing, and
// hot-reloading for pushmic.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"pushmic/internal/hotkey"
)

// Config stores runtime configuration.
type Config struct {
	Hotkey   HotkeyConfig   `toml:"hotkey"`
	Deepgram DeepgramConfig `toml:"deepgram"`
	Audio    AudioConfig    `toml:"audio"`
	Rules    RulesConfig    `toml:"rules"`
	Session  SessionConfig  `toml:"session"`
}

// HotkeyConfig describes the recording trigger.
type HotkeyConfig struct {
	// Trigger is the chord that starts and stops recording, e.g.
	// "right option" or "cmd+shift+space".
	Trigger          string `toml:"trigger"`
	MinimumKeyTimeMS int    `toml:"minimum_key_time_ms"`
	DoubleTapOnly    bool   `toml:"double_tap_only"`
}

// TriggerConfig parses the trigger definition into its runtime form.
func (h HotkeyConfig) TriggerConfig() (hotkey.Config, error) {
	cfg, err := ParseTrigger(h.Trigger)
	if err != nil {
		return hotkey.Config{}, err
	}
	cfg.MinimumKeyTime = time.Duration(h.MinimumKeyTimeMS) * time.Millisecond
	cfg.DoubleTapOnly = h.DoubleTapOnly
	return cfg, nil
}

type DeepgramConfig struct {
	APIKey      string `toml:"api_key"`
	APIBaseURL  string `toml:"api_base_url"`
	Model       string `toml:"model"`
	Language    string `toml:"language"`
	SmartFormat bool   `toml:"smart_format"`
}

type AudioConfig struct {
	InputDevice string `toml:"input_device"`
	SampleRate  int    `toml:"sample_rate"`
	Channels    int    `toml:"channels"`
}

type RulesConfig struct {
	Path           string `toml:"path"`
	IterationLimit int    `toml:"iteration_limit"`
}

type SessionConfig struct {
	ChunkSize        int `toml:"chunk_size"`
	StreamingGraceMS int `toml:"streaming_grace_ms"`
}

func (s SessionConfig) StreamingGrace() time.Duration {
	return time.Duration(s.StreamingGraceMS) * time.Millisecond
}

// DefaultTrigger is the out-of-the-box trigger. It is chorded so the
// registration-based input source can serve it without an event tap;
// modifier-only triggers like "right option" stay available through
// configuration on platforms with a tap.
const DefaultTrigger = "ctrl+shift+space"

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("could not determine home directory")
	}
	return filepath.Join(home, ".config", "pushmic", "config.toml"), nil
}

// Load reads the TOML config at path, then applies environment overrides
// and defaults. A missing file is not an error; the defaults stand alone.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if _, err := ParseTrigger(cfg.Hotkey.Trigger); err != nil {
		return Config{}, fmt.Errorf("invalid hotkey trigger %q: %w", cfg.Hotkey.Trigger, err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("PUSHMIC_TRIGGER")); v != "" {
		c.Hotkey.Trigger = v
	}
	if v := strings.TrimSpace(os.Getenv("DEEPGRAM_API_KEY")); v != "" {
		c.Deepgram.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("DEEPGRAM_API_BASE")); v != "" {
		c.Deepgram.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DEEPGRAM_MODEL")); v != "" {
		c.Deepgram.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("PUSHMIC_RULES_FILE")); v != "" {
		c.Rules.Path = v
	}
	if v := envInt("PUSHMIC_MINIMUM_KEY_TIME_MS"); v > 0 {
		c.Hotkey.MinimumKeyTimeMS = v
	}
	if v := envInt("PUSHMIC_SAMPLE_RATE"); v > 0 {
		c.Audio.SampleRate = v
	}
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Hotkey.Trigger) == "" {
		c.Hotkey.Trigger = DefaultTrigger
	}
	if c.Hotkey.MinimumKeyTimeMS <= 0 {
		c.Hotkey.MinimumKeyTimeMS = 200
	}
	if c.Deepgram.APIBaseURL == "" {
		c.Deepgram.APIBaseURL = "https://api.deepgram.com/v1"
	}
	if c.Deepgram.Model == "" {
		c.Deepgram.Model = "nova-2"
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.Channels <= 0 {
		c.Audio.Channels = 1
	}
	if c.Rules.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Rules.Path = filepath.Join(home, ".config", "pushmic", "substitutions.rules")
		}
	}
	if c.Rules.IterationLimit <= 0 {
		c.Rules.IterationLimit = 30
	}
	if c.Session.ChunkSize < 256 {
		c.Session.ChunkSize = 4096
	}
	if c.Session.StreamingGraceMS <= 0 {
		c.Session.StreamingGraceMS = 1000
	}
}

func envInt(key string) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
