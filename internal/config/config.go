package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel     string        `yaml:"log-level" env:"RIXIT_LOG_LEVEL" env-default:"info"`
	HTTPPort     string        `yaml:"http-port" env:"RIXIT_HTTP_PORT" env-default:"8899"`
	Storage      string        `yaml:"storage" env:"RIXIT_STORAGE" env-default:"memory"`
	Redis        Redis         `yaml:"redis"`
	JWTSecretKey string        `yaml:"jwt-secret-key" env:"RIXIT_JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token-ttl" env:"RIXIT_TOKEN_TTL" env-default:"12h"`
	CORSOrigins  []string      `yaml:"cors-origins" env:"RIXIT_CORS_ORIGINS" env-separator:","`
}

type Redis struct {
	Host     string        `yaml:"host" env:"RIXIT_REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"port" env:"RIXIT_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"RIXIT_REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"RIXIT_REDIS_DB" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env:"RIXIT_REDIS_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file, environment variables win.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
