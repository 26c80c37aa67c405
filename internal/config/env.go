package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
)

// EnvFileVar names a single environment file to load instead of the defaults.
const EnvFileVar = "SITECAKE_ENV_FILE"

// loadEnvFiles loads .env.local and then .env from dir. Variables already in
// the process environment are never overridden, so .env.local wins over .env.
// When SITECAKE_ENV_FILE is set only that file is loaded.
func loadEnvFiles(dir string) ([]string, error) {
	candidates := []string{filepath.Join(dir, ".env.local"), filepath.Join(dir, ".env")}
	if f := os.Getenv(EnvFileVar); f != "" {
		candidates = []string{f}
	}

	var loaded []string
	for _, f := range candidates {
		if err := godotenv.Load(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return loaded, errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
				WithContext("path", f).
				Build()
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}
