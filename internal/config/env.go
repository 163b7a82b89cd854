package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// lookupEnv returns the trimmed value of key and whether it is non-empty.
func lookupEnv(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

// parsedEnvOrDefault parses key with parse, falling back to defaultValue
// when the variable is unset or parse rejects it.
func parsedEnvOrDefault[T any](key string, defaultValue T, parse func(string) (T, bool)) T {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	if val, ok := parse(raw); ok {
		return val
	}
	return defaultValue
}

func envOrDefault(key, defaultValue string) string {
	if raw, ok := lookupEnv(key); ok {
		return raw
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (time.Duration, bool) {
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

// intEnvOrDefault accepts positive integers only.
func intEnvOrDefault(key string, defaultValue int) int {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func uint64EnvOrDefault(key string, defaultValue uint64) uint64 {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (uint64, bool) {
		n, err := strconv.ParseUint(raw, 10, 64)
		return n, err == nil
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "on":
			return true, true
		case "0", "false", "no", "off":
			return false, true
		}
		return false, false
	})
}
