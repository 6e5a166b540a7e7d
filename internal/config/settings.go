package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings are the process-level knobs read from the environment.
type Settings struct {
	DatabaseURL        string
	Port               string
	JWTSecret          string
	ConfigPath         string
	Timezone           string // overrides the reference file's timezone when set
	StrictValidation   bool
	LogLevel           string
	SeedWorkerPassword string
	SeedAdminPassword  string
}

// LoadSettings loads .env (if present) and reads the environment.
// envLoaded reports whether a .env file was found.
func LoadSettings() (s Settings, envLoaded bool) {
	envLoaded = godotenv.Load() == nil
	return SettingsFromEnv(os.Getenv), envLoaded
}

// SettingsFromEnv builds Settings from a lookup function.
func SettingsFromEnv(getenv func(string) string) Settings {
	s := Settings{
		DatabaseURL:        strings.TrimSpace(getenv("DATABASE_URL")),
		Port:               strings.TrimSpace(getenv("PORT")),
		JWTSecret:          getenv("APP_JWT_SECRET"),
		ConfigPath:         strings.TrimSpace(getenv("DSNY_CONFIG_PATH")),
		Timezone:           strings.TrimSpace(getenv("DSNY_TIMEZONE")),
		StrictValidation:   true,
		LogLevel:           strings.TrimSpace(getenv("LOG_LEVEL")),
		SeedWorkerPassword: getenv("SEED_WORKER_PASSWORD"),
		SeedAdminPassword:  getenv("SEED_ADMIN_PASSWORD"),
	}
	if s.Port == "" {
		s.Port = "8080"
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if v := strings.TrimSpace(getenv("DSNY_STRICT_VALIDATION")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.StrictValidation = b
		}
	}
	return s
}
