package config

import (
	"os"
	"strings"

	"binwatch/internal/schedule"
)

// Config carries the per-council data directory overrides.
type Config struct {
	DataDirs map[string]string
}

// FromEnv builds a Config from environment variables, with the council
// descriptors supplying defaults. Each council key can be overridden via
// e.g. ASHFORDVALE_DATA_DIR.
func FromEnv() Config {
	dirs := make(map[string]string)
	for _, c := range schedule.Councils() {
		envKey := strings.ToUpper(c.Key) + "_DATA_DIR"
		if dir := os.Getenv(envKey); dir != "" {
			dirs[c.Key] = dir
		} else if c.DataDir != "" {
			dirs[c.Key] = c.DataDir
		}
	}
	return Config{DataDirs: dirs}
}
