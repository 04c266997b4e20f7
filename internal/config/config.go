package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTP_PORT string `env:"HTTP_PORT" envDefault:"8080"`
	DEBUG     bool   `env:"DEBUG" envDefault:"false"`

	SCHEDULE_API_URL     string        `env:"SCHEDULE_API_URL,required"`
	SCHEDULE_API_TOKEN   string        `env:"SCHEDULE_API_TOKEN"`
	SCHEDULE_API_TIMEOUT time.Duration `env:"SCHEDULE_API_TIMEOUT" envDefault:"15s"`

	// Journal is disabled when empty.
	DB_STRING string `env:"DB_STRING"`

	// Kafka bridge is disabled when empty.
	KAFKA_BROKERS        string `env:"KAFKA_BROKERS"`
	KAFKA_EVENTS_TOPIC   string `env:"KAFKA_EVENTS_TOPIC" envDefault:"calendar.appointments"`
	KAFKA_SCHEDULE_TOPIC string `env:"KAFKA_SCHEDULE_TOPIC" envDefault:"orders.schedule-changed"`
	KAFKA_GROUP_ID       string `env:"KAFKA_GROUP_ID" envDefault:"tailor-calendar"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.SCHEDULE_API_URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SCHEDULE_API_URL must be an absolute URL (got %q)", c.SCHEDULE_API_URL)
	}
	if c.SCHEDULE_API_TIMEOUT <= 0 {
		return errors.New("SCHEDULE_API_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) KafkaEnabled() bool {
	return c.KAFKA_BROKERS != ""
}

func (c *Config) JournalEnabled() bool {
	return c.DB_STRING != ""
}
