package cmd

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	HTTPPort   string `envconfig:"HTTP_PORT" default:"8080"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"orderdesk"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"order_events"`

	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	SessionCookieSecure bool          `envconfig:"SESSION_COOKIE_SECURE" default:"false"`
	CSRFEnabled         bool          `envconfig:"CSRF_ENABLED" default:"true"`

	RateLimitCreatePerMinute int `envconfig:"RATE_LIMIT_CREATE_PER_MINUTE" default:"10"`
	RateLimitUpdatePerMinute int `envconfig:"RATE_LIMIT_UPDATE_PER_MINUTE" default:"30"`
	RateLimitReadPerMinute   int `envconfig:"RATE_LIMIT_READ_PER_MINUTE" default:"60"`

	DeliverySurcharge int `envconfig:"DELIVERY_SURCHARGE" default:"50"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// LoadConfig reads envFile if it exists and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "load %s", envFile)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode environment")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.SessionTTL <= 0:
		return errors.New("SESSION_TTL must be positive")
	case c.RateLimitCreatePerMinute <= 0, c.RateLimitUpdatePerMinute <= 0, c.RateLimitReadPerMinute <= 0:
		return errors.New("rate limits must be positive")
	case c.DeliverySurcharge < 0:
		return errors.New("DELIVERY_SURCHARGE must not be negative")
	}
	return nil
}

// DSN is the libpq-style URL used by gorm, sqlx and the migrator.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return u.String()
}
