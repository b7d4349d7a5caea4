// Package config loads runtime settings from the environment, with optional
// .env file support for development setups.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the server. Command-line flags take
// precedence over environment values.
type Config struct {
	DBPath  string
	Addr    string
	LogPath string
}

// Load reads settings from the environment. A .env file in the working
// directory is applied first if present; missing files are not an error.
func Load() *Config {
	godotenv.Load()

	return &Config{
		DBPath:  getenv("VOLIERE_DB", "voliere.sqlite3"),
		Addr:    getenv("VOLIERE_ADDR", ":8080"),
		LogPath: getenv("VOLIERE_LOG", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
