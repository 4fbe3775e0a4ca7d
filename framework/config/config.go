package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultRoot is the domain of the root bundle.
const DefaultRoot = "odin"

// Settings is the environment-driven bootstrap configuration.
type Settings struct {
	// Strict makes name, identifier and domain comparisons case-sensitive.
	Strict bool

	// Debug enables debug-level logging for every odin scope.
	Debug bool

	// Root is the domain of the root bundle.
	Root string
}

// Load reads .env (if present) and populates Settings from environment variables.
// Call once at bootstrap: settings := config.Load()
//
//	ODIN_STRICT  bool    (default false)
//	ODIN_DEBUG   bool    (default false)
//	ODIN_ROOT    string  (default "odin")
func Load(envFiles ...string) *Settings {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist
	_ = godotenv.Load(files...)

	return &Settings{
		Strict: envBool("ODIN_STRICT", false),
		Debug:  envBool("ODIN_DEBUG", false),
		Root:   env("ODIN_ROOT", DefaultRoot),
	}
}

// Defaults returns the settings used when nothing is configured.
func Defaults() *Settings {
	return &Settings{Root: DefaultRoot}
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
