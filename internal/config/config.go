package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds everything the process needs from the environment. Secrets and
// credentials are never hard-coded, they must be supplied at startup.
type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`
	Port       int  `env:"PORT" envDefault:"8000"`

	Secret        string `env:"SECRET,required"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`

	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"30m"`
	PasswordResetBaseURL       url.URL       `env:"PASSWORD_RESET_BASE_URL,required"`

	SMTPHost         string        `env:"SMTP_HOST,required"`
	SMTPPort         int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername     string        `env:"SMTP_USERNAME,required"`
	SMTPPassword     string        `env:"SMTP_PASSWORD,required"`
	EmailSender      string        `env:"EMAIL_SENDER,required"`
	EmailSendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"10s"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	return config, nil
}
