package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is everything mocksmtpd can be tuned with, values are read from yaml file
// and overridden by environment variables
type Config struct {
	SMTPListen     string        `yaml:"smtp_listen" env:"SMTP_LISTEN" env-default:":2525"`
	APIListen      string        `yaml:"api_listen" env:"API_LISTEN" env-default:":8000"`
	Hostname       string        `yaml:"hostname" env:"HOSTNAME" env-default:"localhost.localdomain"`
	MaxMessageSize int           `yaml:"max_message_size" env:"MAX_MESSAGE_SIZE" env-default:"10240000"`
	MaxConnections int           `yaml:"max_connections" env:"MAX_CONNECTIONS" env-default:"100"`
	MaxRecipients  int           `yaml:"max_recipients" env:"MAX_RECIPIENTS" env-default:"100"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"60s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"60s"`
	DataTimeout    time.Duration `yaml:"data_timeout" env:"DATA_TIMEOUT" env-default:"5m"`
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	RedisURL       string        `yaml:"redis_url" env:"REDIS_URL"`
	WebhookURL     string        `yaml:"webhook_url" env:"WEBHOOK_URL"`
	JaegerHost     string        `yaml:"jaeger_host" env:"JAEGER_HOST"`
	JaegerPort     string        `yaml:"jaeger_port" env:"JAEGER_PORT" env-default:"6831"`
}

// LoadConfig reads configuration from file, if path is not empty, and environment
func LoadConfig(path string) (cfg Config, err error) {
	if path == "" {
		path = os.Getenv("CONFIG")
	}
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
		if err != nil {
			return cfg, fmt.Errorf("while reading environment: %w", err)
		}
		return cfg, cfg.validate()
	}
	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("config file %s not found", path)
	}
	err = cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("while reading config file %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.MaxMessageSize <= 0 {
		return fmt.Errorf("max message size should be positive, not %v", c.MaxMessageSize)
	}
	if c.MaxConnections <= 0 && c.MaxConnections != -1 {
		return fmt.Errorf("max connections should be positive or -1 to disable limit, not %v", c.MaxConnections)
	}
	if c.MaxRecipients <= 0 {
		return fmt.Errorf("max recipients should be positive, not %v", c.MaxRecipients)
	}
	return nil
}
