// Package config provides the configuration schema, loader, and model
// registry for the WordRace race orchestration core.
package config

// Config is the root configuration structure for WordRace.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Race     RaceConfig     `yaml:"race"`
	Models   []ModelEntry   `yaml:"models"`
	Wordlist WordlistConfig `yaml:"wordlist"`
}

// ServerConfig holds network and logging settings for the WordRace server.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity. Valid values: "debug", "info", "warn", "error".
	LogLevel LogLevel `yaml:"log_level"`
}

// LogLevel is a validated logging verbosity string.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// IsValid reports whether l is one of the recognized log levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	}
	return false
}

// RaceConfig holds the tunable knobs governing race submission and scoring
// (§6.4). Zero values are replaced with the package defaults by
// [RaceConfig.ApplyDefaults], except PublicMaxModels, where 0 means
// unlimited.
type RaceConfig struct {
	// PublicMaxModels caps how many models one submission may race at once.
	// 0 means unlimited.
	PublicMaxModels int `yaml:"public_max_models"`

	// DefaultMaxTokensCrossword is the per-clue max_tokens used when a round
	// does not specify one explicitly.
	DefaultMaxTokensCrossword int `yaml:"default_max_tokens_crossword"`

	// DefaultMaxTokensWordle is the per-guess max_tokens applied to every
	// Wordle turn.
	DefaultMaxTokensWordle int `yaml:"default_max_tokens_wordle"`

	// DefaultTimeoutMsCrossword is the per-clue timeout applied when a round
	// does not specify time_limit_ms.
	DefaultTimeoutMsCrossword int `yaml:"default_timeout_ms_crossword"`

	// DefaultTimeoutMsWordle is the per-guess timeout applied to every
	// Wordle turn.
	DefaultTimeoutMsWordle int `yaml:"default_timeout_ms_wordle"`

	// SpeedBonusThresholdMs is the latency below which an attempt earns the
	// flat speed bonus in C1's scoring formula.
	SpeedBonusThresholdMs int64 `yaml:"speed_bonus_threshold_ms"`
}

// Default knob values per §6.4.
const (
	DefaultMaxTokensCrossword    = 16
	DefaultMaxTokensWordle       = 10
	DefaultTimeoutMsCrossword    = 4000
	DefaultTimeoutMsWordle       = 10000
	DefaultSpeedBonusThresholdMs = 250
)

// ApplyDefaults fills each zero-valued token, timeout and speed-bonus field
// with its package default, in place. PublicMaxModels is left unchanged.
func (r *RaceConfig) ApplyDefaults() {
	if r.DefaultMaxTokensCrossword == 0 {
		r.DefaultMaxTokensCrossword = DefaultMaxTokensCrossword
	}
	if r.DefaultMaxTokensWordle == 0 {
		r.DefaultMaxTokensWordle = DefaultMaxTokensWordle
	}
	if r.DefaultTimeoutMsCrossword == 0 {
		r.DefaultTimeoutMsCrossword = DefaultTimeoutMsCrossword
	}
	if r.DefaultTimeoutMsWordle == 0 {
		r.DefaultTimeoutMsWordle = DefaultTimeoutMsWordle
	}
	if r.SpeedBonusThresholdMs == 0 {
		r.SpeedBonusThresholdMs = DefaultSpeedBonusThresholdMs
	}
}

// ModelEntry is one registered model in the default model registry,
// resolvable by callers that submit a bare id string instead of a full
// ModelSpec (§6.2).
type ModelEntry struct {
	// ID is the stable identifier callers reference.
	ID string `yaml:"id"`

	// Name is a human-readable display name.
	Name string `yaml:"name"`

	// Provider selects the adapter backend (e.g. "openai", "anthropic",
	// "ollama") via the [Registry].
	Provider string `yaml:"provider"`

	// EndpointRef is the provider-specific model identifier (e.g.
	// "gpt-4o-mini"), passed through opaquely to the adapter.
	EndpointRef string `yaml:"endpoint_ref"`

	// APIKey authenticates against the provider. May be left empty for
	// providers that read credentials from the environment (e.g. Ollama).
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	BaseURL string `yaml:"base_url"`

	Temperature          *float64 `yaml:"temperature"`
	TopP                 *float64 `yaml:"top_p"`
	ThinkingEnabled      bool     `yaml:"thinking_enabled"`
	ThinkingLevel        string   `yaml:"thinking_level"`
	CustomPromptTemplate string   `yaml:"custom_prompt_template"`

	// Fallback, when set, names a second backend tried when the primary
	// backend's Stream call fails to start (bad credentials, endpoint down).
	// It shares the same logical model id on the scoreboard; only the
	// backend serving the request differs.
	Fallback *FallbackEntry `yaml:"fallback"`
}

// FallbackEntry configures a standby backend for a ModelEntry.
type FallbackEntry struct {
	Provider    string `yaml:"provider"`
	EndpointRef string `yaml:"endpoint_ref"`
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
}

// WordlistConfig configures the curated Wordle target-word pool.
type WordlistConfig struct {
	// Words is the curated list target words are chosen from at random when
	// a submission omits target_word. Falls back to [DefaultWordlist] when
	// empty.
	Words []string `yaml:"words"`
}
