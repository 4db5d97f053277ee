package config

import (
	"fmt"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/vedran77/liveboard/pkg/validator"
)

type Config struct {
	ServerPort      int           `env:"SERVER_PORT,default=8080" validate:"gt=0,max=65535"`
	ServiceName     string        `env:"SERVICE_NAME,default=liveboard" validate:"required"`
	LogLevel        string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	SeedMessages    bool          `env:"BOARD_SEED_MESSAGES,default=true"`
	StrictContent   bool          `env:"BOARD_STRICT_CONTENT,default=false"`
	SendBufferSize  int           `env:"WS_SEND_BUFFER,default=256" validate:"gt=0"`
	MaxMessageSize  int64         `env:"WS_MAX_MESSAGE_SIZE,default=4096" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if errs := validator.Struct(cfg); errs.HasErrors() {
		return nil, fmt.Errorf("config: %w", errs)
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
