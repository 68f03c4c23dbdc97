package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidProviders lists the adapter backends the registry knows how to
// construct for a ModelEntry (§C3 adapter contract).
var ValidProviders = []string{
	"openai", "anthropic", "gemini", "ollama", "deepseek", "mistral",
	"groq", "llamacpp", "llamafile",
}

// Load reads and validates a Config from the YAML file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader reads and validates a Config from r. Unknown YAML fields
// are rejected to catch typos in operator-authored config files.
func LoadFromReader(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.Race.ApplyDefaults()
	if len(cfg.Wordlist.Words) == 0 {
		cfg.Wordlist.Words = DefaultWordlist
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg for hard errors (returned) and logs soft issues via
// slog.Warn (e.g. duplicate model ids, which degrade gracefully by
// last-one-wins but likely indicate a typo).
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr must not be empty"))
	}
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is not one of debug/info/warn/error", cfg.Server.LogLevel))
	}

	seen := make(map[string]bool, len(cfg.Models))
	for i, m := range cfg.Models {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("models[%d]: id must not be empty", i))
		}
		if seen[m.ID] {
			slog.Warn("config: duplicate model id, last entry wins", "id", m.ID)
		}
		seen[m.ID] = true

		if !validProvider(m.Provider) {
			errs = append(errs, fmt.Errorf("models[%d] (%s): provider %q is not one of %v", i, m.ID, m.Provider, ValidProviders))
		}
		if m.EndpointRef == "" {
			slog.Warn("config: model has no endpoint_ref, adapter will reject requests", "id", m.ID)
		}
		if m.Fallback != nil && !validProvider(m.Fallback.Provider) {
			errs = append(errs, fmt.Errorf("models[%d] (%s): fallback.provider %q is not one of %v", i, m.ID, m.Fallback.Provider, ValidProviders))
		}
	}

	if len(cfg.Models) == 0 {
		slog.Warn("config: no models registered, submissions must supply full ModelSpec objects")
	}

	return errors.Join(errs...)
}

func validProvider(name string) bool {
	for _, p := range ValidProviders {
		if p == name {
			return true
		}
	}
	return false
}
