package ollama

// Config contains native inference server configuration.
//   - BaseURL: server root, requests go to {BaseURL}/api/generate
//   - Timeout: whole-request timeout in seconds; generation of large batches takes minutes
type Config struct {
	BaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	Timeout int    `env:"OLLAMA_TIMEOUT"  envDefault:"300"`
}
