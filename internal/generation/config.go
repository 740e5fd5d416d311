package generation

// Config contains generation run settings.
type Config struct {
	PlanPath    string `env:"GENERATION_PLAN_PATH"`
	Concurrency int    `env:"GENERATION_CONCURRENCY" envDefault:"5"`
	Seed        uint64 `env:"GENERATION_SEED"        envDefault:"0"` // 0 seeds from the clock
}
