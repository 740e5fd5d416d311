package store

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and configures the entity store backend.
type Config struct {
	Backend   string `env:"STORE_BACKEND"    envDefault:"file"`
	OutputDir string `env:"STORE_OUTPUT_DIR" envDefault:"output"`

	RedisAddr      string `env:"REDIS_ADDR"       envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB"         envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"ollamagen"`
}
