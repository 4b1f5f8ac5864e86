package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const envFileVariable = "ENV_FILE"

// envFile is a .env location; explicit files must exist, the default one
// may be absent.
type envFile struct {
	path     string
	explicit bool
}

// loadDotEnv copies variables from the .env file into the process
// environment. Variables already set in the environment are not overridden.
func loadDotEnv(f envFile) error {
	if f.path == "" {
		return nil
	}

	err := godotenv.Load(f.path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !f.explicit {
		return nil
	}

	return fmt.Errorf("error loading env file %q: %w", f.path, err)
}

func lookupEnvFile() (string, bool) {
	path, ok := os.LookupEnv(envFileVariable)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}
