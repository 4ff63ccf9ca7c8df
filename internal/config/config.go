// Package config loads noteforge settings from an optional TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/naoina/toml"

	"github.com/jcorbin/noteforge/internal/notegen"
	"github.com/jcorbin/noteforge/internal/noteutil"
)

// FileName is searched for from the working directory upwards.
const FileName = ".noteforge.toml"

// Config holds every setting.
type Config struct {
	Gemini  Gemini  `toml:"gemini"`
	History History `toml:"history"`
	Export  Export  `toml:"export"`
	Screen  Screen  `toml:"screen"`
}

// Gemini configures the note generator.
type Gemini struct {
	APIKey  string   `toml:"api_key"`
	Model   string   `toml:"model"`
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// History configures where recent notes are kept.
type History struct {
	Dir string `toml:"dir"`
}

// Export configures document exports.
type Export struct {
	Dir string `toml:"dir"`

	// SpanAccurateWord bolds only delimited spans in word documents, rather
	// than whole lines containing a bold marker.
	SpanAccurateWord bool `toml:"span_accurate_word"`
}

// Screen configures terminal output.
type Screen struct {
	Width int `toml:"width"`
}

// Duration is a time.Duration written as a string like "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	dur, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Gemini: Gemini{
			Model:   notegen.DefaultModel,
			Timeout: Duration{60 * time.Second},
		},
		History: History{Dir: filepath.Join("~", ".local", "share", "noteforge")},
		Export:  Export{Dir: "."},
		Screen:  Screen{Width: 80},
	}
}

// Path returns the config file to load: the nearest FileName from the working
// directory upwards, else config.toml under the user config directory. An
// empty path means there is none.
func Path() (string, error) {
	info, path, err := noteutil.FindWDFile(FileName)
	if err != nil {
		return "", err
	}
	if info != nil {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", nil
	}
	path = filepath.Join(dir, "noteforge", "config.toml")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return path, nil
}

// Load reads settings from path over Default, applies environment
// overrides, and expands any leading "~" in directories. An empty path skips
// the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		err = Decode(f, &cfg)
		f.Close()
		if err != nil {
			return cfg, fmt.Errorf("invalid config %v: %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, cfg.expand()
}

// Decode reads TOML settings from r into cfg; keys absent from r leave cfg
// unchanged.
func Decode(r io.Reader, cfg *Config) error {
	return toml.NewDecoder(r).Decode(cfg)
}

func (cfg *Config) applyEnv(lookup func(string) (string, bool)) {
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if val, ok := lookup(name); ok && val != "" {
			cfg.Gemini.APIKey = val
			break
		}
	}
	if val, ok := lookup("NOTEFORGE_HISTORY_DIR"); ok && val != "" {
		cfg.History.Dir = val
	}
}

func (cfg *Config) expand() (err error) {
	if cfg.History.Dir, err = noteutil.ExpandHome(cfg.History.Dir); err != nil {
		return err
	}
	cfg.Export.Dir, err = noteutil.ExpandHome(cfg.Export.Dir)
	return err
}

// GeminiConfig returns generator settings.
func (cfg Config) GeminiConfig() notegen.GeminiConfig {
	return notegen.GeminiConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout.Duration,
	}
}
