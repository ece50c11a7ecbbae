package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config is everything tunable from the environment. Zero values are
// usable: no AI endpoint means the mock provider, no seed means a
// time-seeded rng.
type Config struct {
	OwnerName     string `env:"OWNER_NAME" envDefault:"Friend"`
	CompanionName string `env:"COMPANION_NAME" envDefault:"Kindred"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:"soul.json"`

	AIURL   string `env:"AI_URL"`
	AIModel string `env:"AI_MODEL"`
	AIToken string `env:"AI_TOKEN"`

	MaxResponseTokens int `env:"MAX_RESPONSE_TOKENS" envDefault:"150"`

	ProactiveEnabled         bool `env:"PROACTIVE_ENABLED" envDefault:"true"`
	ProactiveIntervalMinutes int  `env:"PROACTIVE_INTERVAL_MINUTES" envDefault:"20"`

	RandomSeed int64 `env:"RANDOM_SEED"`
	Debug      bool  `env:"DEBUG"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
