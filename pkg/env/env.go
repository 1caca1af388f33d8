// Package env reads process environment variables for the storefront,
// mostly ahead of the typed config layer (dotenv bootstrap, test overrides).
package env

import "os"

// Get returns the environment variable named key, or fallback when the
// variable is unset or blank.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
