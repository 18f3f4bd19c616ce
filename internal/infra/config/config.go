package config

import (
	"github.com/shanedonnelly/devops/pkg/env"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type ServerConfig struct {
	Addr        string
	CORSOrigins string
	DBBackend   string
	SQLitePath  string
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:        env.GetEnv("SERVER_ADDR", ":8080"),
		CORSOrigins: env.GetEnv("CORS_ORIGINS", "http://localhost:3000"),
		DBBackend:   env.GetEnv("DB_BACKEND", BackendPostgres),
		SQLitePath:  env.GetEnv("SQLITE_PATH", "devops.db"),
	}
}
