package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" when none
// are given) into the process environment. Variables already set win and
// missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides connection settings and secrets from the environment.
func (c *Config) ApplyEnv() {
	envStr("DATABASE_DRIVER", &c.Database.Driver)
	envStr("DATABASE_HOST", &c.Database.Host)
	envStr("DATABASE_USER", &c.Database.User)
	envStr("DATABASE_PASSWORD", &c.Database.Password)
	envStr("DATABASE_NAME", &c.Database.Name)
	envStr("REDIS_ADDR", &c.Redis.Addr)
	envStr("REDIS_PASSWORD", &c.Redis.Password)
	envStr("LOG_LEVEL", &c.Log.Level)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
