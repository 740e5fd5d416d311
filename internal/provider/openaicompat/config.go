package openaicompat

// Config contains OpenAI-compatible endpoint configuration.
// All fields map to OpenAI SDK options:
//   - APIKey: Maps to option.WithAPIKey(); local servers accept any non-empty value
//   - BaseURL: Maps to option.WithBaseURL()
//   - Timeout: Maps to option.WithRequestTimeout() (in seconds)
type Config struct {
	APIKey  string `env:"OPENAI_COMPAT_API_KEY"  envDefault:"ollama"`
	BaseURL string `env:"OPENAI_COMPAT_BASE_URL" envDefault:"http://localhost:11434/v1"`
	Timeout int    `env:"OPENAI_COMPAT_TIMEOUT"  envDefault:"300"`
}
