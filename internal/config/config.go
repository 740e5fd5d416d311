package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/ollamagen/internal/generation"
	"github.com/davidbz/ollamagen/internal/observability"
	"github.com/davidbz/ollamagen/internal/provider/ollama"
	"github.com/davidbz/ollamagen/internal/provider/openaicompat"
	"github.com/davidbz/ollamagen/internal/store"
)

const (
	TransportOllama = "ollama"
	TransportOpenAI = "openai"
)

// Config represents the application configuration.
type Config struct {
	Server       ServerConfig
	CORS         CORSConfig
	Log          observability.LogConfig
	Model        ModelConfig
	Ollama       ollama.Config
	OpenAICompat openaicompat.Config
	Generation   generation.Config
	Store        store.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"330"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// ModelConfig selects the model, its prompt family and the transport used to reach it.
type ModelConfig struct {
	Name      string `env:"MODEL_NAME"      envDefault:"mistral:7b"`
	Family    string `env:"MODEL_FAMILY"    envDefault:"bracket-instruction"`
	Transport string `env:"MODEL_TRANSPORT" envDefault:"ollama"`
}

// DepConfig is used for dependency injection with dig.
// Several sub-configs share the type name Config, so fields are named.
type DepConfig struct {
	dig.Out

	Server       *ServerConfig
	CORS         *CORSConfig
	Log          *observability.LogConfig
	Model        *ModelConfig
	Ollama       *ollama.Config
	OpenAICompat *openaicompat.Config
	Generation   *generation.Config
	Store        *store.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Out:          dig.Out{},
		Server:       &cfg.Server,
		CORS:         &cfg.CORS,
		Log:          &cfg.Log,
		Model:        &cfg.Model,
		Ollama:       &cfg.Ollama,
		OpenAICompat: &cfg.OpenAICompat,
		Generation:   &cfg.Generation,
		Store:        &cfg.Store,
	}
}
