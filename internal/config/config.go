package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Grading   GradingConfig   `mapstructure:"grading" validate:"required"`
	Grammar   GrammarConfig   `mapstructure:"grammar" validate:"required"`
	Embedding EmbeddingConfig `mapstructure:"embedding" validate:"required"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// UploadDir holds uploaded documents for the duration of one request.
	UploadDir      string   `mapstructure:"upload_dir" validate:"required"`
	MaxUploadMB    int      `mapstructure:"max_upload_mb" validate:"required,gt=0,lte=512"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// AuthConfig contains authentication settings. Auth is optional; when
// enabled, grading endpoints require a bearer token signed with JWTSecret.
type AuthConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gte=0"`
}

// GradingConfig controls the grading pipeline.
type GradingConfig struct {
	// Concurrency is the number of answers scored at once. 1 is sequential.
	Concurrency  int      `mapstructure:"concurrency" validate:"required,gte=1,lte=64"`
	OCRLanguages []string `mapstructure:"ocr_languages" validate:"required,min=1"`
	RenderDPI    int      `mapstructure:"render_dpi" validate:"required,gte=72,lte=600"`
	PdftoppmPath string   `mapstructure:"pdftoppm_path" validate:"required"`
}

// GrammarConfig selects and configures the grammar checker.
type GrammarConfig struct {
	Provider        string `mapstructure:"provider" validate:"required,oneof=languagetool gemini"`
	LanguageToolURL string `mapstructure:"languagetool_url" validate:"omitempty,url"`
	Language        string `mapstructure:"language" validate:"required"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// EmbeddingConfig selects and configures the sentence embedder.
type EmbeddingConfig struct {
	Provider          string  `mapstructure:"provider" validate:"required,oneof=gemini ollama"`
	Model             string  `mapstructure:"model" validate:"required"`
	OllamaURL         string  `mapstructure:"ollama_url" validate:"omitempty,url"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
}

// GeminiConfig contains settings for Gemini-backed capabilities.
type GeminiConfig struct {
	APIKey             string `mapstructure:"api_key"`
	GrammarModel       string `mapstructure:"grammar_model"`
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
	MaxRetries         int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds  int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}

// UsesGemini reports whether any capability is configured to call Gemini.
func (c *Config) UsesGemini() bool {
	return c.Grammar.Provider == "gemini" || c.Embedding.Provider == "gemini"
}
