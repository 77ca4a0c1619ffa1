package env

import "os"

// Get reads an environment variable, falling back when it is unset or empty.
// Used for the handful of lookups that happen before config is loaded.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
