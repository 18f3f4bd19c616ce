package auth

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/shanedonnelly/devops/pkg/env"
)

type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// NewConfig reads the signing secret and token lifetime from the environment.
// The defaults are insecure and exist for local development only.
func NewConfig() *Config {
	ttlMinutes := 30
	if raw := env.GetEnv("TOKEN_TTL_MINUTES", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			slog.Error("invalid TOKEN_TTL_MINUTES, using default", "value", raw, "err", err)
		} else {
			ttlMinutes = parsed
		}
	}
	return &Config{
		Secret:   env.GetEnv("SECRET_KEY", "your-secret-key-change-in-production"),
		TokenTTL: time.Duration(ttlMinutes) * time.Minute,
	}
}
