package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
)

// Config is decoded from flat keys. Nested sections are squashed so every
// field maps to the environment variable of the same name.
type Config struct {
	Server  ServerConfig  `mapstructure:",squash"`
	LLM     LLMConfig     `mapstructure:",squash"`
	Gemini  GeminiConfig  `mapstructure:",squash"`
	OpenAI  OpenAIConfig  `mapstructure:",squash"`
	Logging LoggingConfig `mapstructure:",squash"`

	// Mock makes every request return the canned result
	Mock bool `mapstructure:"mock_mode"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Host         string        `mapstructure:"server_host"`
	ReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	WriteTimeout time.Duration `mapstructure:"server_write_timeout"`

	// RequestTimeout bounds a whole request when positive; zero leaves
	// upstream calls unbounded.
	RequestTimeout time.Duration `mapstructure:"server_request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"server_max_body_bytes"`
	StaticDir      string        `mapstructure:"static_dir"`
	AllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

type LLMConfig struct {
	Provider        string  `mapstructure:"llm_provider"`
	MaxOutputTokens int64   `mapstructure:"llm_max_output_tokens"`
	Temperature     float64 `mapstructure:"llm_temperature"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"gemini_api_key"`
	Model  string `mapstructure:"gemini_model"`

	// BaseURL overrides the Gemini API endpoint, e.g. for a proxy
	BaseURL string `mapstructure:"gemini_base_url"`
}

type OpenAIConfig struct {
	APIKey         string `mapstructure:"openai_api_key"`
	APIEndpoint    string `mapstructure:"openai_endpoint"`
	Model          string `mapstructure:"openai_model"`
	DeploymentName string `mapstructure:"openai_deployment"`
	APIVersion     string `mapstructure:"openai_api_version"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"log_level"`
	Format string `mapstructure:"log_format"`
}

// APIKey returns the credential of the selected provider.
func (c *Config) APIKey() string {
	if c.LLM.Provider == ProviderGemini {
		return c.Gemini.APIKey
	}
	return c.OpenAI.APIKey
}

// Model returns the model identifier of the selected provider.
func (c *Config) Model() string {
	switch c.LLM.Provider {
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderAzure:
		return c.OpenAI.DeploymentName
	default:
		return c.OpenAI.Model
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "90s")
	v.SetDefault("SERVER_REQUEST_TIMEOUT", "0s")
	v.SetDefault("SERVER_MAX_BODY_BYTES", 1<<20)
	v.SetDefault("STATIC_DIR", "public")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MOCK_MODE", false)

	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("LLM_MAX_OUTPUT_TOKENS", 800)
	v.SetDefault("LLM_TEMPERATURE", 0.2)

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "")

	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_ENDPOINT", "https://api.openai.com/v1/")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_DEPLOYMENT", "gpt-4o")
	v.SetDefault("OPENAI_API_VERSION", "2023-05-15")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// LoadConfig reads .env (if present), the optional CONFIG_FILE and the
// process environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// Every key has a default, so Unmarshal sees the environment for all of them.
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Server.AllowedOrigins = splitList(strings.Join(cfg.Server.AllowedOrigins, ","))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("configuration loaded successfully", "provider", cfg.LLM.Provider, "model", cfg.Model(), "mock", cfg.Mock)
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch c.LLM.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required"))
		}
	case ProviderOpenAI, ProviderAzure:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be one of: gemini, openai, azure (got: %s)", c.LLM.Provider))
	}

	if c.Model() == "" {
		errs = append(errs, errors.New("a model identifier is required"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("SERVER_MAX_BODY_BYTES must be positive"))
	}
	if c.LLM.MaxOutputTokens <= 0 {
		errs = append(errs, errors.New("LLM_MAX_OUTPUT_TOKENS must be positive"))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, errors.New("LLM_TEMPERATURE must be between 0 and 2"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%w", errors.Join(errs...))
	}
	return nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
}
