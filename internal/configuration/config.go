package configuration

import (
	"os"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	NATSURL string
	Tracing TracingConfig
}

type ServerConfig struct {
	Port string
}

type StorageConfig struct {
	Dir       string
	PublicDir string
}

type TracingConfig struct {
	Enabled bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Storage: StorageConfig{
			Dir:       getEnv("STORAGE_DIR", "./anhkiniem"),
			PublicDir: getEnv("PUBLIC_DIR", "./public"),
		},
		// Empty means event publishing stays disabled.
		NATSURL: getEnv("NATS_URL", ""),
		Tracing: TracingConfig{
			Enabled: getEnv("DD_TRACE_ENABLED", "false") == "true",
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
