package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the given env files, or ".env" when none are named.
// Missing files are skipped and variables already set in the process win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	present := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		present = append(present, p)
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}
