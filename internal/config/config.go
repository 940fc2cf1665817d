package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Depth      int        `yaml:"depth" env:"BOARD_DEPTH" env-default:"2"`
	MaxDepth   int        `yaml:"max-depth" env:"BOARD_MAX_DEPTH" env-default:"4"`
	Redis      Redis      `yaml:"redis"`
	Scoreboard Scoreboard `yaml:"scoreboard"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Scoreboard struct {
	Enabled bool `yaml:"enabled" env:"SCOREBOARD_ENABLED" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file, applying env overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Depth < 1 {
		return nil, fmt.Errorf("depth must be at least 1, got %d", config.Depth)
	}

	if config.Depth > config.MaxDepth {
		return nil, fmt.Errorf("depth %d exceeds max-depth %d", config.Depth, config.MaxDepth)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
