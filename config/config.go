package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Every variable carries the MOVIEHUB_ prefix. Values from a .env file in the
// working directory are loaded first and never override the real environment.

const envPrefix = "MOVIEHUB"

type Config struct {
	API   APIConfig
	Cache CacheConfig
	Log   LogConfig
	Serve ServeConfig
}

type APIConfig struct {
	BaseURL string        `envconfig:"BASE_URL" default:"http://localhost:5000"`
	Timeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"12s"`
}

type CacheConfig struct {
	RedisAddr string `envconfig:"CACHE_REDIS_ADDR"`
	Prefix    string `envconfig:"CACHE_PREFIX" default:"moviehub"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE"`
}

type ServeConfig struct {
	Addr string `envconfig:"SERVE_ADDR" default:":5000"`
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "failed to load .env")
	}
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to process env config")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:0",
			Timeout: 2 * time.Second,
		},
		Cache: CacheConfig{Prefix: "moviehub-test"},
		Log:   LogConfig{Level: "error"},
		Serve: ServeConfig{Addr: "127.0.0.1:0"},
	}
}
