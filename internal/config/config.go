// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/promptlens/promptlens-cli/api/schemas"
)

// Config holds the entire application configuration.
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	LLM        LLMConfig        `mapstructure:"llm" yaml:"llm"`
	Evaluation EvaluationConfig `mapstructure:"evaluation" yaml:"evaluation"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
}

// LoggerConfig controls the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"` // Megabytes before rotation.
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"` // Days.
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// LLMProvider names a supported model provider implementation.
type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderGoogle LLMProvider = "google"
)

// LLMConfig selects and configures the provider behind the ResponseClient
// collaborator. Exactly one implementation is active per process, chosen
// here rather than by branching inside the client.
type LLMConfig struct {
	Provider LLMProvider  `mapstructure:"provider" yaml:"provider"`
	OpenAI   OpenAIConfig `mapstructure:"openai" yaml:"openai"`
	Google   GoogleConfig `mapstructure:"google" yaml:"google"`
}

// OpenAIConfig configures the OpenAI-compatible HTTP client. Endpoint may
// point at any chat-completions compatible API (OpenAI, Groq, a local
// gateway); the default is the OpenAI public endpoint.
type OpenAIConfig struct {
	APIKey     string        `mapstructure:"api_key" yaml:"api_key"`
	Endpoint   string        `mapstructure:"endpoint" yaml:"endpoint"`
	APITimeout time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
}

// GoogleConfig configures the Gemini client backed by the official genai SDK.
type GoogleConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

// EvaluationConfig carries the operation defaults a front end falls back to
// when the caller does not name a model explicitly.
type EvaluationConfig struct {
	JudgeModel      string `mapstructure:"judge_model" yaml:"judge_model"`
	TargetModel     string `mapstructure:"target_model" yaml:"target_model"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens" yaml:"max_output_tokens"`
}

// ServerConfig configures the optional HTTP surface started by `serve`.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "promptlens")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- LLM --
	v.SetDefault("llm.provider", string(ProviderOpenAI))
	v.SetDefault("llm.openai.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("llm.openai.api_timeout", "90s")

	// -- Evaluation --
	v.SetDefault("evaluation.judge_model", string(schemas.JudgeGPT4))
	v.SetDefault("evaluation.target_model", string(schemas.TargetGPT4))
	v.SetDefault("evaluation.max_output_tokens", schemas.DefaultMaxOutputTokens)

	// -- Server --
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.request_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit_rps", 5.0)
	v.SetDefault("server.rate_limit_burst", 10)
}

// NewDefaultConfig creates a configuration struct populated with defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with the defaults above.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Validate checks cross-field constraints that viper cannot express.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGoogle:
	default:
		return fmt.Errorf("llm.provider must be one of [%s, %s], got %q",
			ProviderOpenAI, ProviderGoogle, c.LLM.Provider)
	}
	if c.Evaluation.MaxOutputTokens <= 0 {
		return fmt.Errorf("evaluation.max_output_tokens must be a positive integer")
	}
	if _, err := schemas.ParseJudgeModel(c.Evaluation.JudgeModel); err != nil {
		return fmt.Errorf("evaluation.judge_model: %w", err)
	}
	if _, err := schemas.ParseTargetModel(c.Evaluation.TargetModel); err != nil {
		return fmt.Errorf("evaluation.target_model: %w", err)
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("server.rate_limit_rps and server.rate_limit_burst must be positive")
	}
	return nil
}
