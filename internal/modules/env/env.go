package env

import "os"

// GetString returns the value of the environment variable under key, or
// fallback when the variable is not set.
func GetString(key string, fallback string) string {
	if val, found := os.LookupEnv(key); found {
		return val
	}

	return fallback
}
