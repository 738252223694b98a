package cli

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/verdure/internal/config"
	"github.com/phanxgames/verdure/store"
)

var configPath string

// initEnv loads .env files and remembers the config file path for the
// command that runs.
func initEnv(path string) error {
	envFiles := []string{".env", ".env.local"}
	for _, envFile := range envFiles {
		godotenv.Load(envFile)
	}
	if path != "" {
		configDir := filepath.Dir(path)
		for _, envFile := range envFiles {
			godotenv.Load(filepath.Join(configDir, envFile))
		}
	}
	configPath = path
	return nil
}

// loadConfig builds the effective configuration and its logger.
func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, config.NewLogger(cfg.Log), nil
}

// openStore connects to the configured database.
func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path:     cfg.Database.Path,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
