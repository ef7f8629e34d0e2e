package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"4000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Backend struct {
		BaseURL string `env:"BASE_URL,required"`
		// The CRM backend runs on a free tier that cold-starts, so the
		// per-request timeout is generous.
		RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"15"`
		ServiceToken   string `env:"SERVICE_TOKEN"`
	} `envPrefix:"BACKEND_"`
	JWT struct {
		Secret string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Taxonomy struct {
		Store string `env:"STORE" envDefault:"file"` // file or redis
		Dir   string `env:"DIR" envDefault:"."`
	} `envPrefix:"TAXONOMY_"`
	Redis struct {
		Host     string `env:"HOST" envDefault:"localhost"`
		Port     int    `env:"PORT" envDefault:"6379"`
		Password string `env:"PASSWORD"`
	} `envPrefix:"REDIS_"`
	Poll struct {
		NotificationInterval int `env:"NOTIFICATION_INTERVAL" envDefault:"30"`
		MetricsInterval      int `env:"METRICS_INTERVAL" envDefault:"30"`
	} `envPrefix:"POLL_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only report the first error to keep the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
