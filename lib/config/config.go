// Package config loads the optional imagediff.yaml file.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm/imagediff"
)

// FileName is the configuration file looked up by Load.
const FileName = "imagediff.yaml"

// Config mirrors imagediff.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Probe  ProbeConfig  `yaml:"probe"`
	Widget WidgetConfig `yaml:"widget"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr      string `yaml:"addr,omitempty"`
	Path      string `yaml:"path,omitempty"`
	Key       string `yaml:"key,omitempty"`
	Sensitive bool   `yaml:"sensitive,omitempty"`
	Static    string `yaml:"static,omitempty"`
}

// ProbeConfig controls server-side image probing. Remote images are only
// fetched from hosts listed in AllowHosts.
type ProbeConfig struct {
	Timeout    string   `yaml:"timeout,omitempty"`
	Root       string   `yaml:"root,omitempty"`
	MaxBytes   int64    `yaml:"max_bytes,omitempty"`
	Disabled   bool     `yaml:"disabled,omitempty"`
	AllowHosts []string `yaml:"allow_hosts,omitempty"`
}

// WidgetConfig holds the initial widget state of the demo page.
type WidgetConfig struct {
	Mode   string `yaml:"mode,omitempty"`
	Before string `yaml:"before,omitempty"`
	After  string `yaml:"after,omitempty"`
}

// Resolved contains configuration with defaults applied.
type Resolved struct {
	Addr         string
	Path         string
	Sensitive    bool
	Static       string
	Key          []byte
	EphemeralKey bool // no key configured, a random one was generated

	ProbeTimeout    time.Duration
	ProbeRoot       string
	ProbeMaxBytes   int64
	ProbeDisabled   bool
	ProbeAllowHosts []string

	Mode   imagediff.Mode
	Before string
	After  string
}

// LoadOptional reads path if present. A missing file yields an empty Config.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads path (if present) and resolves defaults.
func Resolve(path string) (*Resolved, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve()
}

// Resolve applies defaults and validates the configuration.
func (c *Config) Resolve() (*Resolved, error) {
	r := &Resolved{
		Addr:          orDefault(c.Server.Addr, ":8080"),
		Path:          orDefault(c.Server.Path, "/_c/"),
		Sensitive:     c.Server.Sensitive,
		Static:        strings.TrimSpace(c.Server.Static),
		ProbeTimeout:    5 * time.Second,
		ProbeRoot:       orDefault(c.Probe.Root, "."),
		ProbeMaxBytes:   c.Probe.MaxBytes,
		ProbeDisabled:   c.Probe.Disabled,
		ProbeAllowHosts: c.Probe.AllowHosts,
		Before:        strings.TrimSpace(c.Widget.Before),
		After:         strings.TrimSpace(c.Widget.After),
	}

	if !strings.HasPrefix(r.Path, "/") || !strings.HasSuffix(r.Path, "/") {
		return nil, fmt.Errorf("server.path %q must start and end with /", r.Path)
	}

	if key := strings.TrimSpace(c.Server.Key); key != "" {
		r.Key = []byte(key)
	} else {
		r.Key = make([]byte, 32)
		if _, err := rand.Read(r.Key); err != nil {
			return nil, fmt.Errorf("failed to generate key: %w", err)
		}
		r.EphemeralKey = true
	}

	if t := strings.TrimSpace(c.Probe.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, fmt.Errorf("probe.timeout: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("probe.timeout %q must not be negative", t)
		}
		r.ProbeTimeout = d
	}
	if r.ProbeMaxBytes < 0 {
		return nil, fmt.Errorf("probe.max_bytes must not be negative")
	}
	if r.ProbeMaxBytes == 0 {
		r.ProbeMaxBytes = 32 << 20
	}

	mode, err := imagediff.ParseMode(orDefault(c.Widget.Mode, string(imagediff.ModeDifference)))
	if err != nil {
		return nil, fmt.Errorf("widget.mode: %w", err)
	}
	r.Mode = mode

	return r, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
