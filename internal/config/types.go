package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	DSN            string         `yaml:"dsn"` // MySQL DSN
	RedisURL       string         `yaml:"redis_url"`
	Database       DatabaseConfig `yaml:"database"`
	Redis          RedisConfig    `yaml:"redis"`
	Env            string         `yaml:"env"` // "development" | "production"
	AllowedOrigins []string       `yaml:"allowed_origins"`
	AI             AIConfig       `yaml:"ai"`
	Matching       MatchingConfig `yaml:"matching"`
}

type DatabaseConfig struct {
	DSN      string            `yaml:"dsn"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Charset  string            `yaml:"charset"`
	Loc      string            `yaml:"loc"`
	Params   map[string]string `yaml:"params"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AIConfig configures the LLM providers backing the classification fallback,
// the dimension models and explanation generation.
type AIConfig struct {
	Providers         []AIProvider       `yaml:"providers"`
	ClassifierModel   *AIModelAssignment `yaml:"classifier_model,omitempty"`
	DimensionModel    *AIModelAssignment `yaml:"dimension_model,omitempty"`
	ExplanationModel  *AIModelAssignment `yaml:"explanation_model,omitempty"`
	EnableExplanation bool               `yaml:"enable_explanation"`
}

type AIModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model"`
}

type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic | OpenRouter
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// MatchingConfig holds the tunables of the matching core.
type MatchingConfig struct {
	// DimensionTextLimit is the maximum opinion length (in runes) fed to the
	// dimension models; longer input is head-truncated, never rejected.
	DimensionTextLimit int `yaml:"dimension_text_limit"`
	// InferenceTimeout bounds every external model call, in seconds.
	InferenceTimeout int `yaml:"inference_timeout"`
	// ExplanationMaxLength caps generated explanations, in runes.
	ExplanationMaxLength int `yaml:"explanation_max_length"`
}
