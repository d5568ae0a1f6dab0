package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. EXAMCHECKER_SERVER_PORT or EXAMCHECKER_GEMINI_API_KEY.
const EnvPrefix = "EXAMCHECKER"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given YAML file instead of
// searching for config.yaml. An empty path falls back to the search.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and the rules that span several sections.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	var problems []string
	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required when auth is enabled")
	}
	if cfg.Grammar.Provider == "languagetool" && cfg.Grammar.LanguageToolURL == "" {
		problems = append(problems, "grammar.languagetool_url is required for the languagetool provider")
	}
	if cfg.Embedding.Provider == "ollama" && cfg.Embedding.OllamaURL == "" {
		problems = append(problems, "embedding.ollama_url is required for the ollama provider")
	}
	if cfg.UsesGemini() && cfg.Gemini.APIKey == "" {
		problems = append(problems, "gemini.api_key is required when a gemini provider is selected")
	}
	if cfg.Grammar.Provider == "gemini" && cfg.Gemini.GrammarModel == "" {
		problems = append(problems, "gemini.grammar_model is required for the gemini grammar provider")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.upload_dir", "uploads")
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("grading.concurrency", 1)
	v.SetDefault("grading.ocr_languages", []string{"eng"})
	v.SetDefault("grading.render_dpi", 200)
	v.SetDefault("grading.pdftoppm_path", "pdftoppm")

	v.SetDefault("grammar.provider", "languagetool")
	v.SetDefault("grammar.languagetool_url", "http://localhost:8081")
	v.SetDefault("grammar.language", "en-US")
	v.SetDefault("grammar.timeout_seconds", 30)

	v.SetDefault("embedding.provider", "ollama")
	v.SetDefault("embedding.model", "all-minilm")
	v.SetDefault("embedding.ollama_url", "http://localhost:11434")
	v.SetDefault("embedding.requests_per_second", 0)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.grammar_model", "gemini-2.0-flash")
	v.SetDefault("gemini.prompt_template_path", "prompts/grammar_check.tmpl")
	v.SetDefault("gemini.max_retries", 3)
	v.SetDefault("gemini.retry_delay_seconds", 2)
}
